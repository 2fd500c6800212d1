package tokenizer

import (
	"context"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/caption-qa/internal/apperr"
	"github.com/pkoukk/tiktoken-go"
	hftokenizer "github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/pretrained"
	"google.golang.org/genai"
	gemtokenizer "google.golang.org/genai/tokenizer"
)

// CountTokens returns the number of tokens text encodes to under modelID.
func (c *implCounter) CountTokens(text, modelID string) (int, error) {
	enc, err := c.resolve(modelID)
	if err != nil {
		return 0, err
	}
	if text == "" {
		return 0, nil
	}

	n, err := enc.count(text)
	if err != nil {
		return 0, fmt.Errorf("count tokens for %s: %w", modelID, err)
	}
	return n, nil
}

func (c *implCounter) resolve(modelID string) (encoder, error) {
	id := strings.TrimSpace(modelID)
	if id == "" {
		return nil, apperr.New(apperr.CodeUnsupportedModel, "empty model id")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if enc, ok := c.cache[id]; ok {
		return enc, nil
	}

	var enc encoder
	if path, ok := c.files[id]; ok {
		tk, err := pretrained.FromFile(path)
		if err != nil {
			return nil, apperr.Wrapf(err, apperr.CodeUnsupportedModel, "load tokenizer for %s from %s", id, path)
		}
		enc = &hfEncoder{tk: tk}
	} else if strings.HasPrefix(id, "gemini-") {
		tk, err := gemtokenizer.NewLocalTokenizer(id)
		if err != nil {
			return nil, apperr.Wrapf(err, apperr.CodeUnsupportedModel, "no tokenizer for model %s", id)
		}
		enc = &gemmaEncoder{tk: tk}
	} else {
		tk, err := tiktoken.EncodingForModel(id)
		if err != nil {
			return nil, apperr.Wrapf(err, apperr.CodeUnsupportedModel, "no tokenizer for model %s", id)
		}
		enc = &bpeEncoder{tk: tk}
	}

	c.logger.Debug(context.Background(), "Loaded tokenizer for %s", id)
	c.cache[id] = enc
	return enc, nil
}

type bpeEncoder struct {
	tk *tiktoken.Tiktoken
}

func (e *bpeEncoder) count(text string) (int, error) {
	return len(e.tk.Encode(text, nil, nil)), nil
}

// hfEncoder counts without special tokens so the figure reflects the text alone.
type hfEncoder struct {
	tk *hftokenizer.Tokenizer
}

func (e *hfEncoder) count(text string) (int, error) {
	en, err := e.tk.EncodeSingle(text, false)
	if err != nil {
		return 0, err
	}
	return len(en.GetIds()), nil
}

// gemmaEncoder counts with the SentencePiece vocabulary Gemini models share.
// The vocabulary is downloaded once and cached on disk by the SDK.
type gemmaEncoder struct {
	tk *gemtokenizer.LocalTokenizer
}

func (e *gemmaEncoder) count(text string) (int, error) {
	res, err := e.tk.CountTokens([]*genai.Content{genai.NewContentFromText(text, genai.RoleUser)}, nil)
	if err != nil {
		return 0, err
	}
	return int(res.TotalTokens), nil
}
