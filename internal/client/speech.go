package client

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"github.com/lexiread/api/internal/language"
	texttospeechpb "google.golang.org/genproto/googleapis/cloud/texttospeech/v1"
)

// Speech synthesizes audio for generated texts through Google Cloud TTS.
// Invoked fire-and-forget; a failure just leaves the audio URL null.
type Speech struct {
	client   *texttospeech.Client
	mediaDir string
}

// NewSpeech builds the TTS client (credentials discovered via
// GOOGLE_APPLICATION_CREDENTIALS) and ensures the media directory exists.
func NewSpeech(ctx context.Context, mediaDir string) (*Speech, error) {
	client, err := texttospeech.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create tts client: %w", err)
	}

	if err := os.MkdirAll(mediaDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create media dir: %w", err)
	}

	return &Speech{client: client, mediaDir: mediaDir}, nil
}

// Synthesize renders text as MP3, writes it under the media dir and returns
// the public URL path for the file.
func (s *Speech) Synthesize(ctx context.Context, textID, text string, lang language.Language) (string, error) {
	languageCode, voiceName := lang.Voice()

	req := &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: languageCode,
			Name:         voiceName,
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: texttospeechpb.AudioEncoding_MP3,
		},
	}

	resp, err := s.client.SynthesizeSpeech(ctx, req)
	if err != nil {
		return "", fmt.Errorf("failed to synthesize speech: %w", err)
	}

	fileName := textID + ".mp3"
	if err := os.WriteFile(filepath.Join(s.mediaDir, fileName), resp.AudioContent, 0o644); err != nil {
		return "", fmt.Errorf("failed to write audio file: %w", err)
	}

	return "/media/" + fileName, nil
}

func (s *Speech) Close() error {
	return s.client.Close()
}
