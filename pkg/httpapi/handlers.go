package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/belamaran96-coder/vibefit/pkg/domain"
	"github.com/belamaran96-coder/vibefit/pkg/imgutil"
)

type analysisPayload struct {
	Instructions  string `json:"instructions"`
	Styling       string `json:"styling"`
	TechnicalJSON string `json:"technical_json"`
}

type tryOnResponse struct {
	Analysis analysisPayload `json:"analysis"`
	// Image は data URI、生成物がない場合は null です。
	Image *string `json:"image"`
}

type editResponse struct {
	Image *string `json:"image"`
}

type chatTurnPayload struct {
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

type chatRequest struct {
	History     []chatTurnPayload `json:"history"`
	Message     string            `json:"message"`
	UseSearch   bool              `json:"use_search"`
	UseThinking bool              `json:"use_thinking"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

type transcribeResponse struct {
	Text string `json:"text"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleTryOn(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("multipart解析に失敗しました: %w", err))
		return
	}

	person, err := s.readImageField(r, "person")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	garment, err := s.readGarment(ctx, r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	ratio, err := s.resolveAspect(r.FormValue("aspect_ratio"), person)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	quality, err := parseQuality(r.FormValue("quality"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := s.sem.Acquire(ctx, 1); err != nil {
		s.writeError(w, http.StatusServiceUnavailable, err)
		return
	}
	defer s.sem.Release(1)

	analysis, image, err := s.svc.TryOn(ctx, person, garment, ratio, quality)
	if err != nil {
		s.writeError(w, http.StatusBadGateway, err)
		return
	}

	resp := tryOnResponse{
		Analysis: analysisPayload{
			Instructions:  analysis.Instructions,
			Styling:       analysis.Styling,
			TechnicalJSON: analysis.TechnicalJSON,
		},
	}
	if image != nil {
		uri := image.DataURI()
		resp.Image = &uri
	}
	s.writeJSON(w, resp)
}

func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("multipart解析に失敗しました: %w", err))
		return
	}

	image, err := s.readImageField(r, "image")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	instruction := strings.TrimSpace(r.FormValue("instruction"))
	if instruction == "" {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("instruction is required"))
		return
	}

	ratio, err := s.resolveAspect(r.FormValue("aspect_ratio"), image)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := s.sem.Acquire(ctx, 1); err != nil {
		s.writeError(w, http.StatusServiceUnavailable, err)
		return
	}
	defer s.sem.Release(1)

	edited, err := s.svc.Edit(ctx, image, instruction, ratio)
	if err != nil {
		s.writeError(w, http.StatusBadGateway, err)
		return
	}

	var resp editResponse
	if edited != nil {
		uri := edited.DataURI()
		resp.Image = &uri
	}
	s.writeJSON(w, resp)
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("JSONの解析に失敗しました: %w", err))
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("message is required"))
		return
	}

	history := make([]domain.ConversationTurn, 0, len(req.History))
	for _, turn := range req.History {
		role := domain.RoleUser
		if turn.Role == string(domain.RoleAssistant) {
			role = domain.RoleAssistant
		}
		history = append(history, domain.ConversationTurn{
			Role:      role,
			Text:      turn.Text,
			Timestamp: turn.Timestamp,
		})
	}

	reply, err := s.svc.Chat(ctx, history, req.Message, domain.ChatOptions{
		UseSearch:   req.UseSearch,
		UseThinking: req.UseThinking,
	})
	if err != nil {
		s.writeError(w, http.StatusBadGateway, err)
		return
	}
	s.writeJSON(w, chatResponse{Reply: reply})
}

func (s *Server) handleTranscribe(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("multipart解析に失敗しました: %w", err))
		return
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("audio is required: %w", err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("audioの読み込みに失敗しました: %w", err))
		return
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}

	text, err := s.svc.Transcribe(ctx, domain.AudioClip{Data: data, MIMEType: mimeType})
	if err != nil {
		s.writeError(w, http.StatusBadGateway, err)
		return
	}
	s.writeJSON(w, transcribeResponse{Text: text})
}

// readImageField はアップロードされた画像を読み、必要なら上限内に
// 収まるよう再圧縮します。
func (s *Server) readImageField(r *http.Request, field string) (domain.ImageAsset, error) {
	file, _, err := r.FormFile(field)
	if err != nil {
		return domain.ImageAsset{}, fmt.Errorf("%s image is required: %w", field, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return domain.ImageAsset{}, fmt.Errorf("%sの読み込みに失敗しました: %w", field, err)
	}

	normalized, err := imgutil.NormalizeForUpload(data, int(s.maxUpload), s.jpegQuality)
	if err != nil {
		return domain.ImageAsset{}, fmt.Errorf("%sの正規化に失敗しました: %w", field, err)
	}
	return domain.ImageAsset{Data: normalized, MIMEType: http.DetectContentType(normalized)}, nil
}

// readGarment はファイルアップロードと garment_url の両対応です。
func (s *Server) readGarment(ctx context.Context, r *http.Request) (domain.ImageAsset, error) {
	if file, _, err := r.FormFile("garment"); err == nil {
		file.Close()
		return s.readImageField(r, "garment")
	}

	rawURL := strings.TrimSpace(r.FormValue("garment_url"))
	if rawURL == "" {
		return domain.ImageAsset{}, fmt.Errorf("garment image or garment_url is required")
	}
	if s.fetcher == nil {
		return domain.ImageAsset{}, fmt.Errorf("garment_url はこのサーバーでは利用できません")
	}
	return s.fetcher.Fetch(ctx, rawURL)
}

// resolveAspect は明示指定を優先し、なければ画像寸法から分類します。
func (s *Server) resolveAspect(value string, image domain.ImageAsset) (domain.AspectRatio, error) {
	value = strings.TrimSpace(value)
	if value != "" {
		ratio := domain.AspectRatio(value)
		switch ratio {
		case domain.AspectSquare, domain.AspectPortrait, domain.AspectTall, domain.AspectLandscape, domain.AspectWide:
			return ratio, nil
		}
		return "", fmt.Errorf("unsupported aspect_ratio: %q", value)
	}

	width, height, err := imgutil.Dimensions(image.Data)
	if err != nil {
		return "", err
	}
	return domain.ClassifyAspectRatio(width, height)
}

func parseQuality(value string) (domain.ImageQuality, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return domain.Quality2K, nil
	}
	quality := domain.ImageQuality(strings.ToUpper(value))
	switch quality {
	case domain.Quality1K, domain.Quality2K, domain.Quality4K:
		return quality, nil
	}
	return "", fmt.Errorf("unsupported quality: %q", value)
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Warn("レスポンスの書き込みに失敗しました", "error", err)
	}
}

// writeError は終局失敗のメッセージをそのままクライアントへ返します。
// 再試行の判断はユーザーに委ねます。
func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.log.Warn("リクエストが失敗しました", "status", status, "error", err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: err.Error()})
}
