package service

import (
	"context"
	"testing"

	"github.com/Freeeeeet/slotswapper/internal/apperr"
	"go.uber.org/zap"
)

// Create валидирует ввод до обращения к хранилищу, поэтому ветки с ошибками
// проверяются без базы
func TestSlotCreateValidation(t *testing.T) {
	svc := NewSlotService(nil, zap.NewNop())
	ctx := context.Background()

	cases := []struct {
		name       string
		title      string
		start, end int64
	}{
		{"empty title", "", 1000, 2000},
		{"whitespace title", "   ", 1000, 2000},
		{"zero start", "Dentist", 0, 2000},
		{"zero end", "Dentist", 1000, 0},
		{"negative start", "Dentist", -5, 2000},
		{"end equals start", "Dentist", 2000, 2000},
		{"end before start", "Dentist", 2000, 1000},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, "user-1", tc.title, tc.start, tc.end)
			if !apperr.IsCode(err, "validation") {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}
