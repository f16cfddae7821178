package main

import (
	"reflect"
	"testing"

	"busbooking/internal/domain/models"
)

func TestParsePassengerArgs(t *testing.T) {
	got, err := parsePassengerArgs([]string{"Asha:3", "Dev: 65"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []models.Passenger{{Name: "Asha", Age: 3}, {Name: "Dev", Age: 65}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v want %+v", got, want)
	}

	for _, bad := range []string{"Asha", "Asha:ten", "Asha:10x"} {
		if _, err := parsePassengerArgs([]string{bad}); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}
