package core

import (
	"errors"
	"testing"
)

func TestValidateLanguagePair(t *testing.T) {
	tests := []struct {
		name    string
		pair    LanguagePair
		wantErr error
	}{
		{
			name:    "valid pair",
			pair:    LanguagePair{Left: "de", Right: "en"},
			wantErr: nil,
		},
		{
			name:    "empty left code",
			pair:    LanguagePair{Left: "", Right: "en"},
			wantErr: ErrEmptyLanguageCode,
		},
		{
			name:    "empty right code",
			pair:    LanguagePair{Left: "de", Right: ""},
			wantErr: ErrEmptyLanguageCode,
		},
		{
			name:    "hyphen in code",
			pair:    LanguagePair{Left: "de", Right: "en-fr"},
			wantErr: ErrInvalidLanguagePair,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLanguagePair(tt.pair)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateLanguagePair() unexpected error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateLanguagePair() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateDocument(t *testing.T) {
	tests := []struct {
		name    string
		doc     *Document
		wantErr error
	}{
		{
			name:    "valid document",
			doc:     &Document{LangLeft: "Haus", LangRight: "house"},
			wantErr: nil,
		},
		{
			name:    "only one side",
			doc:     &Document{LangLeft: "Haus"},
			wantErr: nil,
		},
		{
			name:    "nil document",
			doc:     nil,
			wantErr: ErrInvalidDocument,
		},
		{
			name:    "no display text",
			doc:     &Document{KeyLeft: "haus"},
			wantErr: ErrEmptyDocument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDocument(tt.doc)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateDocument() unexpected error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateDocument() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
