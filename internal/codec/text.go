package codec

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gasnet/internal/domain"
)

// Separator divides the pipes section from the stations section
var Separator = strings.Repeat("-", 69)

const (
	sectionPipe    = "pipe"
	sectionStation = "compressor station"
	sectionEdge    = "edge"

	// id, name, then three numeric fields
	recordFields = 5

	// MaxLineBytes bounds a single record line
	MaxLineBytes = 1024 * 1024

	truncatedText = 64
)

var (
	errFieldCount  = errors.New("expected 5 comma-separated fields")
	errRepairFlag  = errors.New("repair status must be 0 or 1")
	errSeparator   = errors.New("unexpected separator")
	errLineTooLong = errors.New("line too long")
)

// TextCodec handles the two-section flat file
type TextCodec struct{}

// NewTextCodec creates a new text codec
func NewTextCodec() *TextCodec {
	return &TextCodec{}
}

// Format returns the codec format identifier
func (c *TextCodec) Format() string {
	return "text"
}

// Encode writes pipes, the separator and stations, each section in numeric ID
// order. Names are written verbatim.
func (c *TextCodec) Encode(w io.Writer, inv *domain.Inventory) error {
	sorted := *inv
	sorted.Pipes = append([]domain.Pipe(nil), inv.Pipes...)
	sorted.Stations = append([]domain.CompressorStation(nil), inv.Stations...)
	sorted.Sort()

	bw := bufio.NewWriter(w)
	for _, p := range sorted.Pipes {
		repair := 0
		if p.RepairStatus {
			repair = 1
		}
		fmt.Fprintf(bw, "%s,%s,%d,%d,%d\n", p.ID, p.Name, p.Length, p.Diametre, repair)
	}
	fmt.Fprintln(bw, Separator)
	for _, s := range sorted.Stations {
		fmt.Fprintf(bw, "%s,%s,%d,%d,%d\n", s.ID, s.Name, s.Workshop, s.WorkshopActive, s.Effective)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write inventory: %w", err)
	}
	return nil
}

// Decode reads a save file. Lines that cannot be parsed are skipped and
// reported in Decoded.Malformed; only a read failure aborts decoding.
// Blank lines are ignored.
func (c *TextCodec) Decode(r io.Reader) (*Decoded, error) {
	result := &Decoded{Inventory: domain.NewInventory()}
	br := bufio.NewReaderSize(r, 64*1024)

	inPipes := true
	for lineNo := 1; ; lineNo++ {
		line, tooLong, err := readLine(br)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read inventory: %w", err)
		}

		section := sectionPipe
		if !inPipes {
			section = sectionStation
		}
		if tooLong {
			result.Malformed = append(result.Malformed, &domain.MalformedRecordError{
				Line: lineNo, Section: section, Text: line, Err: errLineTooLong,
			})
			continue
		}

		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		if isSeparator(line) {
			if !inPipes {
				result.Malformed = append(result.Malformed, &domain.MalformedRecordError{
					Line: lineNo, Section: section, Text: line, Err: errSeparator,
				})
			}
			inPipes = false
			continue
		}

		if inPipes {
			pipe, err := parsePipe(line)
			if err != nil {
				result.Malformed = append(result.Malformed, &domain.MalformedRecordError{
					Line: lineNo, Section: section, Text: line, Err: err,
				})
				continue
			}
			result.Inventory.AddPipe(pipe)
			continue
		}

		station, err := parseStation(line)
		if err != nil {
			result.Malformed = append(result.Malformed, &domain.MalformedRecordError{
				Line: lineNo, Section: section, Text: line, Err: err,
			})
			continue
		}
		result.Inventory.AddStation(station)
	}

	return result, nil
}

// readLine returns the next line without its terminator. A line longer than
// MaxLineBytes is read to its end and discarded; only its first
// truncatedText bytes come back, with tooLong set.
func readLine(br *bufio.Reader) (line string, tooLong bool, err error) {
	var buf []byte
	for {
		chunk, isPrefix, err := br.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) && (len(buf) > 0 || tooLong) {
				break
			}
			return "", false, err
		}
		if !tooLong {
			buf = append(buf, chunk...)
			if len(buf) > MaxLineBytes {
				tooLong = true
				buf = buf[:truncatedText]
			}
		}
		if !isPrefix {
			break
		}
	}
	return string(buf), tooLong, nil
}

// isSeparator accepts any run of dashes, so files written with a shorter
// separator still load.
func isSeparator(line string) bool {
	return len(line) >= 3 && strings.Trim(line, "-") == ""
}

// splitRecord returns the ID, the name and the three trailing numeric fields.
// The name is everything between the first comma and the last three, so
// names containing commas survive a round trip.
func splitRecord(line string) (id, name string, nums [3]string, err error) {
	fields := strings.Split(line, ",")
	if len(fields) < recordFields {
		return "", "", nums, errFieldCount
	}
	n := len(fields)
	copy(nums[:], fields[n-3:])
	return fields[0], strings.Join(fields[1:n-3], ","), nums, nil
}

func parsePipe(line string) (domain.Pipe, error) {
	id, name, nums, err := splitRecord(line)
	if err != nil {
		return domain.Pipe{}, err
	}

	length, err := parseCount("length", nums[0])
	if err != nil {
		return domain.Pipe{}, err
	}
	diametre, err := parseCount("diametre", nums[1])
	if err != nil {
		return domain.Pipe{}, err
	}

	var repair bool
	switch nums[2] {
	case "0":
	case "1":
		repair = true
	default:
		return domain.Pipe{}, errRepairFlag
	}

	pipe := domain.Pipe{ID: id, Name: name, Length: length, Diametre: diametre, RepairStatus: repair}
	if err := pipe.Validate(); err != nil {
		return domain.Pipe{}, err
	}
	return pipe, nil
}

func parseStation(line string) (domain.CompressorStation, error) {
	id, name, nums, err := splitRecord(line)
	if err != nil {
		return domain.CompressorStation{}, err
	}

	var counts [3]int
	for i, field := range []string{"workshop", "workshop_active", "effective"} {
		if counts[i], err = parseCount(field, nums[i]); err != nil {
			return domain.CompressorStation{}, err
		}
	}

	station := domain.CompressorStation{
		ID:             id,
		Name:           name,
		Workshop:       counts[0],
		WorkshopActive: counts[1],
		Effective:      counts[2],
	}
	if err := station.Validate(); err != nil {
		return domain.CompressorStation{}, err
	}
	return station, nil
}

// parseCount accepts non-negative decimal integers only
func parseCount(field, value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n < 0 {
		return 0, domain.NewValidationError(field, value, domain.ErrInvalidInput)
	}
	return n, nil
}
