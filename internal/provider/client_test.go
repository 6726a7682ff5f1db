package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatCompletion(t *testing.T) {
	var gotAuth string
	var gotBody ChatRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		fmt.Fprint(w, `{"choices":[{"message":{"content":"hi there"}}],"usage":{"prompt_tokens":3,"completion_tokens":2,"total_tokens":5}}`)
	}))
	defer srv.Close()

	c := New(srv.URL)
	content, tokens, err := c.ChatCompletion(context.Background(), "sk-test", ChatRequest{
		Model:    "gpt-x",
		Messages: []ChatMessage{{Role: "user", Content: "hello"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "hi there", content)
	assert.Equal(t, 5, tokens.Total)
	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Equal(t, "gpt-x", gotBody.Model)
	require.Len(t, gotBody.Messages, 1)
	assert.Equal(t, "hello", gotBody.Messages[0].Content)
}

func TestChatCompletionNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, _, err := c.ChatCompletion(context.Background(), "sk-test", ChatRequest{Model: "gpt-x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestGenerateImages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/images/generations", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "a red cube", body["prompt"])
		assert.Equal(t, float64(2), body["n"])
		assert.Equal(t, "url", body["response_format"])

		fmt.Fprint(w, `{"data":[{"url":"http://img/one.png"},{"url":"http://img/two.png"}]}`)
	}))
	defer srv.Close()

	c := New(srv.URL)
	urls, err := c.GenerateImages(context.Background(), "sk-test", ImageGenerationRequest{
		Prompt: "a red cube", Count: 2, Size: "512x512",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"http://img/one.png", "http://img/two.png"}, urls)
}

func TestDownloadImageChecksContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok.png":
			w.Header().Set("Content-Type", "image/png")
			w.Write([]byte("png-bytes"))
		default:
			w.Header().Set("Content-Type", "text/html")
			w.Write([]byte("<html>expired</html>"))
		}
	}))
	defer srv.Close()

	c := New(srv.URL)

	data, err := c.DownloadImage(context.Background(), srv.URL+"/ok.png")
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)

	_, err = c.DownloadImage(context.Background(), srv.URL+"/expired")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "content-type")
}

func TestEditImageMultipartParts(t *testing.T) {
	base := writeTempFile(t, "base.png", "base-bytes")
	mask := writeTempFile(t, "mask.png", "mask-bytes")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/images/edits", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "make it blue", r.FormValue("prompt"))
		assert.Equal(t, "1", r.FormValue("n"))
		assert.Equal(t, "url", r.FormValue("response_format"))

		for _, name := range []string{"image", "mask"} {
			f, _, err := r.FormFile(name)
			require.NoError(t, err, "missing %s part", name)
			f.Close()
		}

		fmt.Fprint(w, `{"data":[{"url":"http://img/edited.png"}]}`)
	}))
	defer srv.Close()

	c := New(srv.URL)
	urls, err := c.EditImage(context.Background(), "sk-test", ImageEditRequest{
		Prompt: "make it blue", Count: 1, Size: "512x512",
		BaseImagePath: base, MaskImagePath: mask,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"http://img/edited.png"}, urls)
}

func TestTranscribeMultipartFields(t *testing.T) {
	audio := writeTempFile(t, "take.wav", "wav-bytes")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/audio/transcriptions", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "whisper-1", r.FormValue("model"))
		assert.Equal(t, "json", r.FormValue("response_format"))
		assert.Equal(t, "0.0", r.FormValue("temperature"))
		assert.Equal(t, "en", r.FormValue("language"))

		f, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		assert.Equal(t, "take.wav", header.Filename)
		data, err := io.ReadAll(f)
		require.NoError(t, err)
		assert.Equal(t, "wav-bytes", string(data))

		fmt.Fprint(w, `{"text":"add a cube"}`)
	}))
	defer srv.Close()

	c := New(srv.URL)
	text, err := c.Transcribe(context.Background(), "sk-test", TranscriptionRequest{
		FilePath: audio, Model: "whisper-1", Temperature: 0.0, Language: "en",
	})
	require.NoError(t, err)
	assert.Equal(t, "add a cube", text)
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
