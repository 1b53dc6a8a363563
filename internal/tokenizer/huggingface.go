package tokenizer

import (
	"errors"
	"fmt"
	"path/filepath"

	hf "github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/pretrained"
)

type huggingFaceCounter struct {
	tokenizer *hf.Tokenizer
	name      string
}

func newHuggingFaceCounter(tokenizerFile string) (Counter, error) {
	loaded, loadError := pretrained.FromFile(tokenizerFile)
	if loadError != nil {
		return nil, fmt.Errorf("load tokenizer from %s: %w", tokenizerFile, loadError)
	}
	return huggingFaceCounter{tokenizer: loaded, name: filepath.Base(tokenizerFile)}, nil
}

func (counter huggingFaceCounter) Name() string {
	return counter.name
}

func (counter huggingFaceCounter) CountString(input string) (int, error) {
	if counter.tokenizer == nil {
		return 0, errors.New("nil huggingface tokenizer")
	}
	encoding, encodeError := counter.tokenizer.EncodeSingle(input)
	if encodeError != nil {
		return 0, encodeError
	}
	return len(encoding.Tokens), nil
}
