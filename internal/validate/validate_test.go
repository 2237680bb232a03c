package validate

import (
	"errors"
	"testing"

	"github.com/totegamma/quill/internal/domain"
)

type createInput struct {
	Title   *string `json:"title" validate:"required"`
	Content *string `json:"content" validate:"required"`
}

type editInput struct {
	PostID  *string `json:"postId" validate:"required"`
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

func fieldReasons(t *testing.T, err error) map[string]string {
	t.Helper()
	var verr domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	reasons := make(map[string]string, len(verr.Fields))
	for _, f := range verr.Fields {
		reasons[f.Field] = f.Reason
	}
	return reasons
}

func TestDecodeEnumeratesEveryMissingField(t *testing.T) {
	_, err := Decode[createInput]([]byte(`{}`), false)

	reasons := fieldReasons(t, err)
	if reasons["title"] != "required" {
		t.Fatalf("expected title to be reported, got %v", reasons)
	}
	if reasons["content"] != "required" {
		t.Fatalf("expected content to be reported, got %v", reasons)
	}
}

func TestDecodeAcceptsEmptyStrings(t *testing.T) {
	input, err := Decode[createInput]([]byte(`{"title":"","content":""}`), false)
	if err != nil {
		t.Fatalf("empty strings must pass, got %v", err)
	}
	if input.Title == nil || *input.Title != "" {
		t.Fatalf("expected present empty title")
	}
}

func TestDecodeRejectsWrongType(t *testing.T) {
	_, err := Decode[createInput]([]byte(`{"title":5,"content":"x"}`), false)

	reasons := fieldReasons(t, err)
	if _, ok := reasons["title"]; !ok {
		t.Fatalf("expected title type error, got %v", reasons)
	}
}

func TestDecodeStrictRejectsUnknownField(t *testing.T) {
	_, err := Decode[editInput]([]byte(`{"postId":"post_x","author":"me"}`), true)

	reasons := fieldReasons(t, err)
	if reasons["author"] != "unknown field" {
		t.Fatalf("expected unknown field to be reported, got %v", reasons)
	}
}

func TestDecodeNonStrictIgnoresUnknownField(t *testing.T) {
	input, err := Decode[createInput]([]byte(`{"title":"a","content":"b","extra":true}`), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *input.Title != "a" || *input.Content != "b" {
		t.Fatalf("unexpected decoded input: %+v", input)
	}
}

func TestDecodeMalformedPayload(t *testing.T) {
	_, err := Decode[createInput]([]byte(`not json`), false)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDecodeOptionalFieldsStayNil(t *testing.T) {
	input, err := Decode[editInput]([]byte(`{"postId":"post_x"}`), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if input.Title != nil || input.Content != nil {
		t.Fatalf("expected absent fields to stay nil: %+v", input)
	}
}
