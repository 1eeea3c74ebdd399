// Package templating renderiza os templates Liquid usados na geração de textos
package templating

import (
	"fmt"
	"strings"
	"sync"

	"github.com/osteele/liquid"
)

// Renderer compila templates uma única vez e os reaproveita entre renderizações
type Renderer struct {
	engine *liquid.Engine
	cache  sync.Map // map[string]*liquid.Template
}

func NewRenderer() *Renderer {
	return &Renderer{engine: liquid.NewEngine()}
}

// Render processa o template com as variáveis informadas e colapsa espaços
func (r *Renderer) Render(source string, vars map[string]any) (string, error) {
	tpl, err := r.template(source)
	if err != nil {
		return "", err
	}

	out, renderErr := tpl.RenderString(vars)
	if renderErr != nil {
		return "", fmt.Errorf("templating: erro ao renderizar template: %w", renderErr)
	}

	return strings.Join(strings.Fields(out), " "), nil
}

// MustCompile valida o template na inicialização
func (r *Renderer) MustCompile(sources ...string) {
	for _, source := range sources {
		if _, err := r.template(source); err != nil {
			panic(err)
		}
	}
}

func (r *Renderer) template(source string) (*liquid.Template, error) {
	if cached, ok := r.cache.Load(source); ok {
		return cached.(*liquid.Template), nil
	}

	tpl, err := r.engine.ParseString(source)
	if err != nil {
		return nil, fmt.Errorf("templating: erro ao compilar template: %w", err)
	}

	r.cache.Store(source, tpl)
	return tpl, nil
}
