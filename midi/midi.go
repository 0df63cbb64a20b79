package midi

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"gitlab.com/gomidi/midi/v2/smf"
)

// Read parses a Standard MIDI File. The smf reader can panic on truncated
// input, so a panic comes back as an error.
func Read(r io.Reader) (s *smf.SMF, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			s = nil
			err = fmt.Errorf("malformed midi data: %v", rec)
		}
	}()

	s, err = smf.ReadFrom(r)
	if err != nil {
		return nil, fmt.Errorf("could not parse midi data: %w", err)
	}
	return s, nil
}

func ReadMidiFile(path string) (*smf.SMF, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %w", path, err)
	}
	defer f.Close()

	s, err := Read(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}
