package summarizer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"tubenotes/config"
)

type recordingGenerator struct {
	prompts []string
	reply   string
	err     error
}

func (r *recordingGenerator) Generate(_ context.Context, prompt string) (string, error) {
	r.prompts = append(r.prompts, prompt)
	return r.reply, r.err
}

func TestSummarizeSendsPromptThenTranscript(t *testing.T) {
	g := &recordingGenerator{reply: "  - verbatim reply\n"}

	got, err := Summarize(context.Background(), g, "a b c", "PROMPT:")
	require.NoError(t, err)

	assert.Equal(t, "  - verbatim reply\n", got)
	assert.Equal(t, []string{"PROMPT:a b c"}, g.prompts)
}

func TestSummarizePropagatesError(t *testing.T) {
	boom := errors.New("quota exceeded")
	_, err := Summarize(context.Background(), &recordingGenerator{err: boom}, "x", "p")
	assert.ErrorIs(t, err, boom)
}

type geminiRequest struct {
	Contents []struct {
		Role  string `json:"role"`
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	} `json:"contents"`
}

func TestGeminiGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "models/test-model:generateContent"), r.URL.Path)

		var req geminiRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		require.Len(t, req.Contents[0].Parts, 1)
		assert.Equal(t, "hello", req.Contents[0].Parts[0].Text)

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"candidates":[{"content":{"role":"model","parts":[{"text":"- one\n"},{"text":"- two"}]},"finishReason":"STOP"}]}`)
	}))
	defer srv.Close()

	g, err := NewGemini(context.Background(), "key", "models/test-model", srv.URL+"/")
	require.NoError(t, err)

	got, err := g.Generate(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "- one\n- two", got)
}

func TestGeminiWithoutKey(t *testing.T) {
	g, err := NewGemini(context.Background(), "", "", "")
	require.NoError(t, err)

	_, err = g.Generate(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GOOGLE_API_KEY")
}

func TestCandidateText(t *testing.T) {
	cases := []struct {
		name    string
		resp    *genai.GenerateContentResponse
		want    string
		wantErr bool
	}{
		{name: "nil", resp: nil, wantErr: true},
		{name: "no candidates", resp: &genai.GenerateContentResponse{}, wantErr: true},
		{
			name: "blocked",
			resp: &genai.GenerateContentResponse{
				PromptFeedback: &genai.GenerateContentResponsePromptFeedback{BlockReason: genai.BlockedReasonSafety},
			},
			wantErr: true,
		},
		{
			name: "empty parts",
			resp: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{
					Content:      &genai.Content{},
					FinishReason: genai.FinishReasonMaxTokens,
				}},
			},
			wantErr: true,
		},
		{
			name: "text",
			resp: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{
					Content: &genai.Content{Parts: []*genai.Part{{Text: "ok"}}},
				}},
			},
			want: "ok",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := candidateText(c.resp)
			if c.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

// rewriteTransport sends every request to target, keeping the path
type rewriteTransport struct {
	target *url.URL
}

func (rt rewriteTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	r = r.Clone(r.Context())
	r.URL.Scheme = rt.target.Scheme
	r.URL.Host = rt.target.Host
	return http.DefaultTransport.RoundTrip(r)
}

func TestCohereGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer co-key", r.Header.Get("Authorization"))
		body, _ := io.ReadAll(r.Body)
		var req map[string]any
		require.NoError(t, json.Unmarshal(body, &req))
		assert.Equal(t, "summarize me", req["message"])
		assert.Equal(t, "command-r", req["model"])

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"text":"- cohere summary","generation_id":"g1","finish_reason":"COMPLETE"}`)
	}))
	defer srv.Close()

	target, err := url.Parse(srv.URL)
	require.NoError(t, err)

	c := NewCohere("co-key", "", &http.Client{Transport: rewriteTransport{target: target}})
	got, err := c.Generate(context.Background(), "summarize me")
	require.NoError(t, err)
	assert.Equal(t, "- cohere summary", got)
}

func TestCohereWithoutKey(t *testing.T) {
	_, err := NewCohere("", "", nil).Generate(context.Background(), "x")
	require.Error(t, err)
}

func TestNewSelectsBackend(t *testing.T) {
	g, err := New(context.Background(), config.GeneratorConfig{Backend: config.GeneratorCohere})
	require.NoError(t, err)
	assert.IsType(t, &Cohere{}, g)

	g, err = New(context.Background(), config.GeneratorConfig{})
	require.NoError(t, err)
	assert.IsType(t, &Gemini{}, g)

	_, err = New(context.Background(), config.GeneratorConfig{Backend: "llama"})
	require.Error(t, err)
}
