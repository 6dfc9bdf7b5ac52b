package tools

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"
)

// Summarize derives the run summary. Only critical tools with a non-zero
// exit code count as failures.
func Summarize(results []ToolResult, elapsed time.Duration) Summary {
	s := Summary{TotalToolsRun: len(results), OverallStatus: StatusPass}
	for _, r := range results {
		if r.CriticalFailure() {
			s.CriticalFailures++
		}
	}
	if s.CriticalFailures > 0 {
		s.OverallStatus = StatusFail
	}
	s.ExecutionTime = math.Round(elapsed.Seconds()*100) / 100
	return s
}

const summaryKey = "summary"

// reportKey names a result in the report object. A tool called "summary"
// can only be an unknown name; it is keyed apart so the aggregate keeps its
// key. Decoding reads the name back from the result's "tool" field.
func reportKey(tool string) string {
	if tool == summaryKey {
		return "tool:" + tool
	}
	return tool
}

// MarshalJSON encodes the report as one object keyed by tool name in run
// order, followed by the "summary" key.
func (r Report) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for _, res := range r.Results {
		k, err := json.Marshal(reportKey(res.Tool))
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(res)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
		buf.WriteByte(',')
	}
	v, err := json.Marshal(r.Summary)
	if err != nil {
		return nil, err
	}
	buf.WriteString(`"` + summaryKey + `":`)
	buf.Write(v)
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reverses MarshalJSON, keeping the key order of the document.
func (r *Report) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return errors.New("report: expected object")
	}
	var out Report
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("report: unexpected token %v", tok)
		}
		if key == summaryKey {
			if err := dec.Decode(&out.Summary); err != nil {
				return fmt.Errorf("report: summary: %w", err)
			}
			continue
		}
		var res ToolResult
		if err := dec.Decode(&res); err != nil {
			return fmt.Errorf("report: %s: %w", key, err)
		}
		if res.Tool == "" {
			res.Tool = key
		}
		out.Results = append(out.Results, res)
	}
	*r = out
	return nil
}
