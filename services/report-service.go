package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"tlux-project/microservices/dashboard-service/logging"
	"tlux-project/microservices/dashboard-service/models"

	"github.com/sony/gobreaker"
)

var ErrReportInProgress = errors.New("report generation already in progress")

// Fiksne poruke koje zamenjuju neuspešan ili prazan odgovor AI servisa -
// greška se nikad ne propagira dalje od izveštaja.
const (
	reportEmptyFallback   = "Không thể phân tích vào lúc này."
	reportFailureFallback = "Lỗi khi kết nối AI."
)

// ReportService poziva eksterni AI servis za kratki menadžerski izveštaj.
// Drži tačno jedan slot izveštaja; dok je poziv u toku novi zahtevi se
// odbijaju, a rezultat (tekst ili fiksna poruka o grešci) zamenjuje slot.
type ReportService struct {
	state   *StateService
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
	baseURL string
	apiKey  string
	model   string

	mu        sync.Mutex
	analyzing bool
	report    string
}

func NewReportService(state *StateService, client *http.Client, breaker *gobreaker.CircuitBreaker, baseURL, apiKey, model string) *ReportService {
	return &ReportService{
		state:   state,
		client:  client,
		breaker: breaker,
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
	}
}

// RequestReport pokreće generisanje u pozadini. Poziv je fire-and-forget:
// nema otkazivanja, spor odgovor jednostavno stigne kasnije.
func (s *ReportService) RequestReport() error {
	s.mu.Lock()
	if s.analyzing {
		s.mu.Unlock()
		return ErrReportInProgress
	}
	s.analyzing = true
	s.mu.Unlock()

	go s.run()
	return nil
}

// Report vraća trenutni sadržaj slota i da li je analiza u toku.
func (s *ReportService) Report() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.report, s.analyzing
}

// ClearReport briše slot na zahtev korisnika.
func (s *ReportService) ClearReport() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.report = ""
}

func (s *ReportService) run() {
	text, err := s.generate(context.Background(), s.state.Tasks())

	s.mu.Lock()
	defer s.mu.Unlock()
	s.analyzing = false

	switch {
	case err != nil:
		logging.Logger.Errorf("Event ID: AI_REPORT_FAILED, Description: AI report call failed: %v", err)
		s.report = reportFailureFallback
	case text == "":
		s.report = reportEmptyFallback
	default:
		s.report = text
	}
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// generate šalje rezime zadataka (naslov, status, napredak) AI servisu kroz
// circuit breaker i vraća generisani tekst.
func (s *ReportService) generate(ctx context.Context, tasks []models.Task) (string, error) {
	summaries := make([]string, 0, len(tasks))
	for _, task := range tasks {
		summaries = append(summaries, fmt.Sprintf("%s (%s, %d%%)", task.Title, task.Status.Label(), task.Progress))
	}

	prompt := fmt.Sprintf("Hãy đóng vai Senior Project Manager. Dưới đây là danh sách công việc của công ty T-Lux Floor: %s. "+
		"Hãy phân tích ngắn gọn tình hình hiện tại (3-4 câu) và đề xuất 3 hành động ưu tiên để đảm bảo tiến độ thi công và kinh doanh. "+
		"Trả về kết quả bằng tiếng Việt.", strings.Join(summaries, ", "))

	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to serialize AI request: %v", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", s.baseURL, s.model, s.apiKey)

	result, err := s.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := s.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			payload, _ := io.ReadAll(resp.Body)
			return nil, fmt.Errorf("AI service returned status %d: %s", resp.StatusCode, string(payload))
		}

		var decoded geminiResponse
		if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
			return nil, fmt.Errorf("failed to decode AI response: %v", err)
		}
		if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
			return "", nil
		}
		return strings.TrimSpace(decoded.Candidates[0].Content.Parts[0].Text), nil
	})
	if err != nil {
		return "", err
	}

	text, _ := result.(string)
	return text, nil
}
