package output

import (
	"io"

	"gopkg.in/yaml.v3"
)

type yamlRenderer struct {
	w io.Writer
}

func newYAMLRenderer(w io.Writer) *yamlRenderer {
	return &yamlRenderer{w: w}
}

func (r *yamlRenderer) encode(v interface{}) error {
	encoder := yaml.NewEncoder(r.w)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return err
	}
	return encoder.Close()
}

func (r *yamlRenderer) RenderResult(result interface{}) error { return r.encode(result) }
func (r *yamlRenderer) RenderError(err error) error           { return r.encode(errorDoc(err)) }
func (r *yamlRenderer) RenderMessage(msg string) error        { return r.encode(map[string]string{"message": msg}) }
