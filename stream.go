package schlemmer

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// maxLineSize is the longest JSON line a PoseReader accepts
const maxLineSize = 1 << 20

// ErrDecode is wrapped by errors for lines that are not a valid pose list.
// The reader stays usable after a decode error.
var ErrDecode = errors.New("invalid pose line")

// PoseReader decodes a stream of pose lists written one JSON array per
// line, the format emitted by the pose estimator bridge and used for
// recordings
type PoseReader struct {
	scanner *bufio.Scanner
	line    int
	// err is the terminal error returned once the scanner has stopped
	err error
}

// NewPoseReader returns a reader decoding pose lists from r
func NewPoseReader(r io.Reader) *PoseReader {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	return &PoseReader{scanner: s}
}

// Next returns the next pose list.  Blank lines are skipped.  Returns io.EOF
// at the end of the stream.  Errors wrapping ErrDecode skip one line, any
// other error ends the stream and is returned on every later call.
func (p *PoseReader) Next() ([]Pose, error) {

	if p.err != nil {
		return nil, p.err
	}

	for p.scanner.Scan() {
		p.line++
		data := p.scanner.Bytes()

		if len(data) == 0 {
			continue
		}

		var poses []Pose

		if err := json.Unmarshal(data, &poses); err != nil {
			return nil, fmt.Errorf("%w on line %d: %w", ErrDecode, p.line, err)
		}

		for i := range poses {
			for j := range poses[i] {
				poses[i][j].Name = keyPointNames[j]
			}
		}

		return poses, nil
	}

	p.err = io.EOF

	if err := p.scanner.Err(); err != nil {
		p.err = fmt.Errorf("error reading poses after line %d: %w", p.line, err)
	}

	return nil, p.err
}

// PoseWriter encodes pose lists one JSON array per line
type PoseWriter struct {
	enc *json.Encoder
}

// NewPoseWriter returns a writer encoding pose lists to w
func NewPoseWriter(w io.Writer) *PoseWriter {
	return &PoseWriter{enc: json.NewEncoder(w)}
}

// Write encodes one pose list
func (p *PoseWriter) Write(poses []Pose) error {
	if poses == nil {
		poses = []Pose{}
	}
	if err := p.enc.Encode(poses); err != nil {
		return fmt.Errorf("error encoding poses: %w", err)
	}
	return nil
}
