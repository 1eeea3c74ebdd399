package phrasing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/vfg2006/rsa-auditor-api/internal/domain"
	"github.com/vfg2006/rsa-auditor-api/internal/usecases/rewriting"
	"github.com/vfg2006/rsa-auditor-api/pkg/templating"
)

type fakeModel struct {
	replies []*schema.Message
	errs    []error
	calls   int
	prompts []string
}

func (f *fakeModel) Generate(_ context.Context, input []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	i := f.calls
	f.calls++
	f.prompts = append(f.prompts, input[len(input)-1].Content)
	var err error
	if i < len(f.errs) {
		err = f.errs[i]
	}
	if err != nil {
		return nil, err
	}
	if i < len(f.replies) {
		return f.replies[i], nil
	}
	return nil, errors.New("sem resposta configurada")
}

func newTestClient(m *fakeModel) *Client {
	c := newClient(m, rate.NewLimiter(rate.Inf, 1), templating.NewRenderer())
	c.backoff = time.Millisecond
	return c
}

func request() rewriting.PhraseRequest {
	return rewriting.PhraseRequest{
		Context: domain.RewriteContext{
			Brand:       "Nike",
			Geo:         domain.Geo{City: "Austin"},
			TopKeywords: []string{"running shoes", "trail runners"},
			Constraints: domain.RewriteConstraints{HeadlineCount: 6, DescriptionCount: 2},
		},
		Vertical:             "ecommerce",
		Issue:                domain.ClassifiedIssue{Type: "Low CTR", Metric: "0.50%", Benchmark: "3.50%", Fix: "Echo top queries", SourceRule: domain.RuleLowCTR},
		MaxHeadlineLength:    30,
		MaxDescriptionLength: 90,
	}
}

func TestPhrase(t *testing.T) {
	tests := []struct {
		name          string
		model         *fakeModel
		expected      rewriting.PhraseResult
		expectedErr   error
		expectedCalls int
	}{
		{
			name: "Resposta JSON válida",
			model: &fakeModel{replies: []*schema.Message{
				schema.AssistantMessage(`{"headlines":["Nike Running Shoes"],"descriptions":["Shop lightweight trail runners today."]}`, nil),
			}},
			expected:      rewriting.PhraseResult{Headlines: []string{"Nike Running Shoes"}, Descriptions: []string{"Shop lightweight trail runners today."}},
			expectedCalls: 1,
		},
		{
			name: "Remove cerca de markdown",
			model: &fakeModel{replies: []*schema.Message{
				schema.AssistantMessage("```json\n{\"headlines\":[\"Trail Runners In Austin\"]}\n```", nil),
			}},
			expected:      rewriting.PhraseResult{Headlines: []string{"Trail Runners In Austin"}},
			expectedCalls: 1,
		},
		{
			name: "Tenta de novo após resposta inválida",
			model: &fakeModel{replies: []*schema.Message{
				schema.AssistantMessage("Here are some headlines", nil),
				schema.AssistantMessage(`{"headlines":["Nike Running Shoes"]}`, nil),
			}},
			expected:      rewriting.PhraseResult{Headlines: []string{"Nike Running Shoes"}},
			expectedCalls: 2,
		},
		{
			name: "Repete em caso de 429",
			model: &fakeModel{
				errs:    []error{errors.New("error, status code: 429, message: Too Many Requests")},
				replies: []*schema.Message{nil, schema.AssistantMessage(`{"headlines":["Nike Running Shoes"]}`, nil)},
			},
			expected:      rewriting.PhraseResult{Headlines: []string{"Nike Running Shoes"}},
			expectedCalls: 2,
		},
		{
			name:          "Erro do modelo não é repetido",
			model:         &fakeModel{errs: []error{errors.New("invalid api key")}},
			expectedErr:   errors.New("invalid api key"),
			expectedCalls: 1,
		},
		{
			name: "Resposta sempre vazia",
			model: &fakeModel{replies: []*schema.Message{
				schema.AssistantMessage("", nil),
				schema.AssistantMessage(`{}`, nil),
				schema.AssistantMessage(" ", nil),
			}},
			expectedErr:   ErrEmptyReply,
			expectedCalls: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(tt.model)

			result, err := client.Phrase(context.Background(), request())

			assert.Equal(t, tt.expectedCalls, tt.model.calls)
			if tt.expectedErr != nil {
				require.Error(t, err)
				if errors.Is(tt.expectedErr, ErrEmptyReply) {
					assert.ErrorIs(t, err, ErrEmptyReply)
				} else {
					assert.EqualError(t, err, tt.expectedErr.Error())
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestPhrase_Prompt(t *testing.T) {
	m := &fakeModel{replies: []*schema.Message{schema.AssistantMessage(`{"headlines":["Nike Running Shoes"]}`, nil)}}

	_, err := newTestClient(m).Phrase(context.Background(), request())
	require.NoError(t, err)

	require.Len(t, m.prompts, 1)
	prompt := m.prompts[0]
	assert.Contains(t, prompt, "Brand: Nike.")
	assert.Contains(t, prompt, "City: Austin.")
	assert.NotContains(t, prompt, "Category:")
	assert.Contains(t, prompt, "running shoes, trail runners")
	assert.Contains(t, prompt, "6 headlines of at most 30 characters")
}

func TestPhrase_CanceledContext(t *testing.T) {
	m := &fakeModel{}
	client := newClient(m, rate.NewLimiter(rate.Every(time.Hour), 1), templating.NewRenderer())
	// consome o único token disponível
	require.True(t, client.limiter.Allow())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Phrase(ctx, request())

	assert.Error(t, err)
	assert.Zero(t, m.calls)
}
