package fixture

import (
	"errors"
	"io"

	"market-fixtures/internal/model"
)

// EncodeDecisions writes one decision per line, no header.
func EncodeDecisions(w io.Writer, ds []model.Decision) error {
	cw := newWriter(w)
	rec := make([]string, 1)
	for _, d := range ds {
		rec[0] = decisionField(d)
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func WriteDecisions(path string, ds []model.Decision) error {
	return writeFile(path, func(w io.Writer) error { return EncodeDecisions(w, ds) })
}

func DecodeDecisions(r io.Reader) ([]model.Decision, error) {
	cr := newReader(r, 1)
	var out []model.Decision
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		d, err := model.ParseDecision(rec[0])
		if err != nil {
			line, _ := cr.FieldPos(0)
			return nil, &ParseError{Line: line, Err: err}
		}
		out = append(out, d)
	}
}

func ReadDecisions(path string) ([]model.Decision, error) {
	return readFile(path, DecodeDecisions)
}

func decisionField(d model.Decision) string {
	if d == model.DecisionSubmit {
		return "1"
	}
	return "0"
}
