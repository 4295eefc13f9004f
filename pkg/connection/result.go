package connection

import (
	"fmt"

	"github.com/buger/jsonparser"
	"github.com/goccy/go-json"

	"github.com/studioerp/odoo.go/pkg/constants"
)

// Backend and proxy iterations have produced three shapes for a search_read
// result: a bare array of records, a {records, length} wrapper, and a
// {records: {records, length}} double wrapper. normalizeRecords detects
// which one it was handed and flattens all of them to the same RawRecordSet.

func normalizeRecords(result []byte) (*RawRecordSet, error) {
	_, dataType, _, err := jsonparser.Get(result)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", constants.ErrInvalidResponse, err)
	}

	switch dataType {
	case jsonparser.Array:
		records, err := collectArray(result)
		if err != nil {
			return nil, err
		}
		return &RawRecordSet{Records: records, TotalCount: len(records)}, nil

	case jsonparser.Object:
		inner, innerType, _, err := jsonparser.Get(result, "records")
		if err != nil {
			return nil, fmt.Errorf("%w: object result without records key", constants.ErrInvalidResponse)
		}
		if innerType == jsonparser.Object {
			// double wrapper: unwrap once and fall through to the plain one
			return normalizeRecords(inner)
		}
		if innerType != jsonparser.Array {
			return nil, fmt.Errorf("%w: records is %s, not an array", constants.ErrInvalidResponse, innerType)
		}

		records, err := collectArray(inner)
		if err != nil {
			return nil, err
		}
		length, err := jsonparser.GetInt(result, "length")
		if err != nil {
			length = int64(len(records))
		}
		return &RawRecordSet{Records: records, TotalCount: int(length)}, nil
	}

	return nil, fmt.Errorf("%w: unexpected result type %s", constants.ErrInvalidResponse, dataType)
}

func collectArray(data []byte) ([]json.RawMessage, error) {
	records := make([]json.RawMessage, 0, 8)
	var walkErr error
	_, err := jsonparser.ArrayEach(data, func(value []byte, dataType jsonparser.ValueType, _ int, _ error) {
		if walkErr != nil {
			return
		}
		if dataType == jsonparser.String {
			// ArrayEach strips the quotes from string elements
			quoted, qerr := json.Marshal(string(value))
			if qerr != nil {
				walkErr = qerr
				return
			}
			records = append(records, quoted)
			return
		}
		records = append(records, json.RawMessage(append([]byte(nil), value...)))
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", constants.ErrInvalidResponse, err)
	}
	if walkErr != nil {
		return nil, fmt.Errorf("%w: %v", constants.ErrInvalidResponse, walkErr)
	}
	return records, nil
}
