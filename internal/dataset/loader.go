// Package dataset loads the raw measurement table and reduces it to the
// numeric, fully populated feature matrix the rest of the pipeline works on.
package dataset

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-resty/resty/v2"
)

// ErrLoad reports an unreachable or malformed input table.
var ErrLoad = errors.New("dataset: load failed")

// The sensor export uses these tokens for missing readings. Division
// artifacts like #DIV/0! appear in the derived summary columns.
var missingTokens = []string{"NA", "", "#DIV/0!"}

// Load reads a comma-separated table with a header row from a local path or
// an http(s) URL. A single attempt is made; there is no retry.
func Load(source string) (dataframe.DataFrame, error) {
	raw, err := fetch(source)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	df := dataframe.ReadCSV(bytes.NewReader(raw),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
		dataframe.NaNValues(missingTokens),
	)
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("%w: parse %s: %v", ErrLoad, source, df.Err)
	}
	if df.Nrow() == 0 {
		return dataframe.DataFrame{}, fmt.Errorf("%w: %s contains no rows", ErrLoad, source)
	}
	return df, nil
}

func fetch(source string) ([]byte, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		resp, err := resty.New().R().Get(source)
		if err != nil {
			return nil, fmt.Errorf("%w: fetch %s: %v", ErrLoad, source, err)
		}
		if resp.IsError() {
			return nil, fmt.Errorf("%w: fetch %s: status %s", ErrLoad, source, resp.Status())
		}
		return resp.Body(), nil
	}
	raw, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrLoad, source, err)
	}
	return raw, nil
}
