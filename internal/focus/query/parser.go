package query

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mmechtley/hstfocus/internal/common/errors"
)

// Timestamps in the generated tables look like "06/21/2010 12:00:00".
const rowTimeLayout = "01/02/2006 15:04:05"

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// ParseTable decodes a generated focus data table. Comment lines start with
// '#'; every data row is "MM/DD/YYYY HH:MM:SS defocus". Any row that does not
// match raises a parse error rather than being coerced or skipped.
func ParseTable(body []byte) (*FocusTable, error) {
	if looksLikeHTML(body) {
		return nil, errors.NewTableParseError(1, "body is an HTML document, not a focus data table")
	}

	table := &FocusTable{}
	scanner := bufio.NewScanner(bytes.NewReader(body))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 3 {
			return nil, errors.NewTableParseError(lineNo, fmt.Sprintf("expected 3 columns (date, time, defocus), got %d", len(fields)))
		}

		ts, err := time.Parse(rowTimeLayout, fields[0]+" "+fields[1])
		if err != nil {
			return nil, errors.NewTableParseError(lineNo, fmt.Sprintf("bad timestamp %q: %v", fields[0]+" "+fields[1], err))
		}

		defocus, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, errors.NewTableParseError(lineNo, fmt.Sprintf("bad defocus value %q: %v", fields[2], err))
		}

		table.Rows = append(table.Rows, Row{Timestamp: ts, Defocus: defocus})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.NewTableParseError(lineNo, err.Error())
	}

	return table, nil
}

// ValidatePlot checks that the retrieved plot bytes are actually a PNG image.
// The server answers failed generations with an HTML error page, so the
// signature check is what catches an ambiguous payload.
func ValidatePlot(body []byte) error {
	if len(body) == 0 {
		return errors.NewImageParseError("plot body is empty")
	}
	if !bytes.HasPrefix(body, pngSignature) {
		return errors.NewImageParseError("plot body does not start with a PNG signature")
	}
	return nil
}

func looksLikeHTML(body []byte) bool {
	trimmed := bytes.TrimSpace(body)
	return bytes.HasPrefix(trimmed, []byte("<"))
}
