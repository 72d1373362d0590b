package gemini

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

type scriptedReply struct {
	resp *genai.GenerateContentResponse
	err  error
}

type recordedChat struct {
	model   string
	config  *genai.GenerateContentConfig
	session *scriptedSession
}

type scriptedSession struct {
	reply    scriptedReply
	messages []string
}

func (s *scriptedSession) SendMessage(_ context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
	for _, part := range parts {
		s.messages = append(s.messages, part.Text)
	}
	return s.reply.resp, s.reply.err
}

type scriptedChats struct {
	mu      sync.Mutex
	replies []scriptedReply
	chats   []recordedChat
}

func (s *scriptedChats) push(resp *genai.GenerateContentResponse, err error) {
	s.replies = append(s.replies, scriptedReply{resp: resp, err: err})
}

func (s *scriptedChats) Create(_ context.Context, model string, config *genai.GenerateContentConfig, _ []*genai.Content) (chatSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.replies) == 0 {
		return nil, errors.New("unexpected call")
	}

	session := &scriptedSession{reply: s.replies[0]}
	s.replies = s.replies[1:]
	s.chats = append(s.chats, recordedChat{model: model, config: config, session: session})
	return session, nil
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: text}}},
		}},
	}
}

func noSleep(t *testing.T) {
	t.Helper()
	original := wait
	wait = func(ctx context.Context, _ time.Duration) error { return ctx.Err() }
	t.Cleanup(func() { wait = original })
}

func TestGeneratorRetriesOnServerError(t *testing.T) {
	noSleep(t)

	chats := &scriptedChats{}
	chats.push(nil, genai.APIError{Code: http.StatusInternalServerError, Status: "INTERNAL"})
	chats.push(textResponse(`{"summary": "ok"}`), nil)

	g := &Generator{chats: chats, model: "gemini-test", maxRetries: 2, logger: zap.NewNop()}

	output, err := g.GenerateContent(context.Background(), "system", "slate")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if output != `{"summary": "ok"}` {
		t.Fatalf("unexpected output: %q", output)
	}

	if len(chats.chats) != 2 {
		t.Fatalf("expected 2 calls, got %d", len(chats.chats))
	}

	for _, chat := range chats.chats {
		if chat.model != "gemini-test" {
			t.Fatalf("unexpected model: %q", chat.model)
		}
		if chat.config == nil || chat.config.SystemInstruction == nil {
			t.Fatalf("expected system instruction to be set")
		}
		if got := chat.config.SystemInstruction.Parts[0].Text; got != "system" {
			t.Fatalf("unexpected system instruction: %q", got)
		}
		if chat.config.ResponseMIMEType != "application/json" {
			t.Fatalf("expected json response type, got %q", chat.config.ResponseMIMEType)
		}
		if len(chat.session.messages) != 1 || chat.session.messages[0] != "slate" {
			t.Fatalf("unexpected chat messages: %+v", chat.session.messages)
		}
	}
}

func TestGeneratorStopsAfterRetriesExhausted(t *testing.T) {
	noSleep(t)

	chats := &scriptedChats{}
	serverErr := genai.APIError{Code: http.StatusServiceUnavailable, Status: "UNAVAILABLE"}
	chats.push(nil, serverErr)
	chats.push(nil, serverErr)

	g := &Generator{chats: chats, model: "gemini-test", maxRetries: 2, logger: zap.NewNop()}

	if _, err := g.GenerateContent(context.Background(), "sys", "msg"); err == nil {
		t.Fatal("expected error after retries exhausted")
	}

	if len(chats.chats) != 2 {
		t.Fatalf("expected 2 calls, got %d", len(chats.chats))
	}
}

func TestGeneratorBackoffStopsOnCancel(t *testing.T) {
	chats := &scriptedChats{}
	serverErr := genai.APIError{Code: http.StatusServiceUnavailable, Status: "UNAVAILABLE"}
	chats.push(nil, serverErr)
	chats.push(nil, serverErr)

	g := &Generator{chats: chats, model: "gemini-test", maxRetries: 2, logger: zap.NewNop()}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := g.GenerateContent(ctx, "sys", "msg")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", err)
	}

	if elapsed := time.Since(start); elapsed >= retryBaseDelay {
		t.Fatalf("backoff ignored cancellation, took %s", elapsed)
	}

	if len(chats.chats) != 1 {
		t.Fatalf("expected no retry after cancellation, got %d calls", len(chats.chats))
	}
}

func TestGeneratorDoesNotRetryClientErrors(t *testing.T) {
	chats := &scriptedChats{}
	chats.push(nil, genai.APIError{Code: http.StatusBadRequest, Status: "INVALID_ARGUMENT"})

	g := &Generator{chats: chats, model: "gemini-test", maxRetries: 3, logger: zap.NewNop()}

	if _, err := g.GenerateContent(context.Background(), "sys", "msg"); err == nil {
		t.Fatal("expected error for bad request")
	}

	if len(chats.chats) != 1 {
		t.Fatalf("expected single call, got %d", len(chats.chats))
	}
}

func TestGeneratorDoesNotRetryOnLongQuotaDelay(t *testing.T) {
	chats := &scriptedChats{}
	chats.push(nil, genai.APIError{
		Code:    http.StatusTooManyRequests,
		Status:  "RESOURCE_EXHAUSTED",
		Message: "quota exhausted, retry after 60 seconds",
	})

	g := &Generator{chats: chats, model: "gemini-test", maxRetries: 3, logger: zap.NewNop()}

	if _, err := g.GenerateContent(context.Background(), "sys", "msg"); err == nil {
		t.Fatal("expected error when quota delay too long")
	}

	if len(chats.chats) != 1 {
		t.Fatalf("expected single call, got %d", len(chats.chats))
	}
}

func TestGeneratorRejectsEmptyInput(t *testing.T) {
	g := &Generator{chats: &scriptedChats{}, model: "gemini-test", maxRetries: 1, logger: zap.NewNop()}

	if _, err := g.GenerateContent(context.Background(), "sys", "   "); err == nil {
		t.Fatal("expected error for empty message")
	}

	var nilGenerator *Generator
	if _, err := nilGenerator.GenerateContent(context.Background(), "sys", "msg"); err == nil {
		t.Fatal("expected error for nil generator")
	}
}

func TestGeneratorEmptyResponse(t *testing.T) {
	chats := &scriptedChats{}
	chats.push(textResponse("   "), nil)

	g := &Generator{chats: chats, model: "gemini-test", maxRetries: 1, logger: zap.NewNop()}

	if _, err := g.GenerateContent(context.Background(), "", "msg"); err == nil {
		t.Fatal("expected error for empty response")
	}

	if chats.chats[0].config.SystemInstruction != nil {
		t.Fatal("expected no system instruction for empty system prompt")
	}
}

func TestRetryDelay(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		err     error
		attempt int
		delay   time.Duration
		retry   bool
	}{
		{name: "plain error", err: errors.New("boom"), attempt: 1},
		{name: "server error", err: genai.APIError{Code: 500}, attempt: 1, delay: retryBaseDelay, retry: true},
		{name: "backoff grows", err: genai.APIError{Code: 502}, attempt: 3, delay: 4 * retryBaseDelay, retry: true},
		{name: "backoff capped", err: genai.APIError{Code: 503}, attempt: 10, delay: maxRetryDelay, retry: true},
		{name: "quota with hint", err: genai.APIError{Code: 429, Message: "Please retry in 1.5s."}, attempt: 1, delay: 1500 * time.Millisecond, retry: true},
		{name: "quota without hint", err: genai.APIError{Code: 429}, attempt: 2, delay: 2 * retryBaseDelay, retry: true},
		{name: "quota too long", err: genai.APIError{Code: 429, Message: "retry after 120 seconds"}, attempt: 1},
		{name: "not found", err: genai.APIError{Code: 404}, attempt: 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			delay, retry := retryDelay(tc.err, tc.attempt)
			if retry != tc.retry {
				t.Fatalf("expected retry %v, got %v", tc.retry, retry)
			}
			if delay != tc.delay {
				t.Fatalf("expected delay %s, got %s", tc.delay, delay)
			}
		})
	}
}

func TestResponseTextJoinsParts(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			nil,
			{Content: &genai.Content{Parts: []*genai.Part{{Text: " first "}, nil, {Text: ""}}}},
			{Content: &genai.Content{Parts: []*genai.Part{{Text: "second"}}}},
		},
	}

	if got := responseText(resp); got != "first\nsecond" {
		t.Fatalf("unexpected text: %q", got)
	}

	if got := responseText(nil); got != "" {
		t.Fatalf("expected empty text for nil response, got %q", got)
	}
}

func TestGeneratorHonoursRateLimit(t *testing.T) {
	chats := &scriptedChats{}
	chats.push(textResponse("first"), nil)
	chats.push(textResponse("second"), nil)

	g := &Generator{
		chats:      chats,
		model:      "gemini-test",
		maxRetries: 1,
		logger:     zap.NewNop(),
		limiter:    rate.NewLimiter(rate.Every(time.Hour), 1),
	}

	if _, err := g.GenerateContent(context.Background(), "", "msg"); err != nil {
		t.Fatalf("first request should use the burst token: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if _, err := g.GenerateContent(ctx, "", "msg"); err == nil {
		t.Fatal("expected rate limit error for the second request")
	}

	if len(chats.chats) != 1 {
		t.Fatalf("expected a single chat, got %d", len(chats.chats))
	}
}

func TestNewGeneratorAppliesDefaults(t *testing.T) {
	g, err := NewGenerator(context.Background(), " key ", " ", 0, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if g.Model() != defaultModel {
		t.Fatalf("expected default model, got %q", g.Model())
	}
	if g.maxRetries != defaultMaxRetries {
		t.Fatalf("expected default retries, got %d", g.maxRetries)
	}

	if _, err := NewGenerator(context.Background(), " ", "", 0, nil); err == nil {
		t.Fatal("expected error for a blank api key")
	}
}
