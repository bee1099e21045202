package ir

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// Dump renders code as plain text, one Quadruple.String() per line. Used by
// the package's golden-file tests, where the line-oriented format is easier
// to diff than the YAML DumpYAML produces for the CLI's --dump-ir flag.
func Dump(code []Quadruple) string {
	var b strings.Builder
	for _, q := range code {
		b.WriteString(q.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// yamlQuad is the serializable shadow of a Quadruple: yaml.v3 can't marshal
// Operand's internal Kind tag usefully, so DumpYAML renders each operand to
// its string form (or nil for an empty slot) and lets the struct tags do the
// rest.
type yamlQuad struct {
	Op     string `yaml:"op"`
	Arg1   any    `yaml:"arg1"`
	Arg2   any    `yaml:"arg2"`
	Result any    `yaml:"result"`
}

func operandForYAML(o Operand) any {
	if o.IsZero() {
		return nil
	}
	if o.Kind == OperandInt {
		return o.Int
	}
	return o.Name
}

// DumpYAML renders code as YAML, one document listing every quadruple in
// order. Backs the CLI's --dump-ir flag.
func DumpYAML(code []Quadruple) ([]byte, error) {
	docs := make([]yamlQuad, len(code))
	for i, q := range code {
		docs[i] = yamlQuad{
			Op:     string(q.Op),
			Arg1:   operandForYAML(q.Arg1),
			Arg2:   operandForYAML(q.Arg2),
			Result: operandForYAML(q.Result),
		}
	}
	return yaml.Marshal(docs)
}
