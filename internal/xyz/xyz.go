// Package xyz reads atomic structures from XYZ-format coordinate files.
// The format is line-oriented: atom count, comment, then one
// "symbol x y z" line per atom. Trajectory files concatenate frames.
package xyz

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Structure is a single atomic geometry: element symbols plus Cartesian
// coordinates in Angstroms, index-aligned. Loaders return it fully
// populated; nothing mutates it afterwards.
type Structure struct {
	Symbols []string
	Coords  [][3]float64
	Comment string
}

// Len returns the number of atoms.
func (s *Structure) Len() int { return len(s.Symbols) }

// Read parses a single XYZ frame from r.
func Read(r io.Reader) (*Structure, error) {
	br := bufio.NewReader(r)
	s, err := readFrame(br)
	if err == io.EOF {
		return nil, fmt.Errorf("empty xyz input")
	}
	return s, err
}

// ReadTrajectory parses concatenated XYZ frames from r until EOF.
// A truncated or malformed trailing frame is an error, not a short read.
func ReadTrajectory(r io.Reader) ([]*Structure, error) {
	br := bufio.NewReader(r)
	var frames []*Structure
	for {
		s, err := readFrame(br)
		if err == io.EOF {
			if len(frames) == 0 {
				return nil, fmt.Errorf("no frames in trajectory")
			}
			return frames, nil
		}
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", len(frames), err)
		}
		frames = append(frames, s)
	}
}

// ReadFile reads a single-frame XYZ file from disk.
func ReadFile(path string) (*Structure, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	s, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// ReadTrajectoryFile reads a multi-frame XYZ file from disk.
func ReadTrajectoryFile(path string) ([]*Structure, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadTrajectory(f)
}

// readFrame reads one frame. io.EOF means a clean end at a frame boundary;
// any other error means the frame itself is malformed.
func readFrame(br *bufio.Reader) (*Structure, error) {
	countLine, err := nextNonBlankLine(br)
	if err != nil {
		return nil, err // io.EOF at a frame boundary is clean
	}
	n, err := strconv.Atoi(strings.TrimSpace(countLine))
	if err != nil {
		return nil, fmt.Errorf("bad atom count line %q", strings.TrimSpace(countLine))
	}
	if n < 0 {
		return nil, fmt.Errorf("negative atom count %d", n)
	}

	comment, err := readLine(br)
	if err != nil {
		return nil, fmt.Errorf("missing comment line: %w", unexpectedEOF(err))
	}

	s := &Structure{
		Symbols: make([]string, 0, n),
		Coords:  make([][3]float64, 0, n),
		Comment: strings.TrimRight(comment, "\r\n"),
	}
	for i := 0; i < n; i++ {
		line, err := readLine(br)
		if err != nil {
			return nil, fmt.Errorf("atom %d of %d: %w", i+1, n, unexpectedEOF(err))
		}
		fields := strings.Fields(line)
		// Extended XYZ carries extra columns after the coordinates; only
		// the first four fields matter here.
		if len(fields) < 4 {
			return nil, fmt.Errorf("atom line %d: want symbol and 3 coordinates, got %q", i+1, strings.TrimSpace(line))
		}
		var coord [3]float64
		for k := 0; k < 3; k++ {
			v, err := strconv.ParseFloat(fields[k+1], 64)
			if err != nil {
				return nil, fmt.Errorf("atom line %d: bad coordinate %q", i+1, fields[k+1])
			}
			coord[k] = v
		}
		s.Symbols = append(s.Symbols, fields[0])
		s.Coords = append(s.Coords, coord)
	}
	return s, nil
}

// nextNonBlankLine skips blank lines between frames and returns the next
// line with content, or io.EOF if none remains.
func nextNonBlankLine(br *bufio.Reader) (string, error) {
	for {
		line, err := readLine(br)
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(line) != "" {
			return line, nil
		}
	}
}

// readLine returns one line without requiring a trailing newline on the
// final line of the file.
func readLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	if err == io.EOF && line != "" {
		return line, nil
	}
	return line, err
}

func unexpectedEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}
