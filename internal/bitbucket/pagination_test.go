package bitbucket

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRemainingPagesComputesFullRange(t *testing.T) {
	env := Envelope{
		Size:    29,
		Pagelen: 10,
		Next:    "https://api.example.com/repositories/acme?page=2",
	}

	pages, err := RemainingPages(env)
	require.NoError(t, err)
	require.Equal(t, []string{
		"https://api.example.com/repositories/acme?page=2",
		"https://api.example.com/repositories/acme?page=3",
	}, pages)
}

func TestRemainingPagesNoNext(t *testing.T) {
	pages, err := RemainingPages(Envelope{Size: 5, Pagelen: 10})
	require.NoError(t, err)
	require.Empty(t, pages)
}

func TestRemainingPagesUnknownTotal(t *testing.T) {
	tests := []struct {
		name string
		env  Envelope
	}{
		{name: "missing_size", env: Envelope{Pagelen: 10, Next: "https://api.example.com/repositories/acme?page=2"}},
		{name: "missing_pagelen", env: Envelope{Size: 29, Next: "https://api.example.com/repositories/acme?page=2"}},
		{name: "missing_both", env: Envelope{Next: "https://api.example.com/repositories/acme?page=2"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			pages, err := RemainingPages(tt.env)
			require.NoError(t, err)
			require.Equal(t, []string{"https://api.example.com/repositories/acme?page=2"}, pages)
		})
	}
}

func TestRemainingPagesPreservesOtherParams(t *testing.T) {
	env := Envelope{
		Size:    25,
		Pagelen: 10,
		Next:    "https://api.example.com/repositories/acme/repo/pullrequests?state=OPEN&page=2",
	}

	pages, err := RemainingPages(env)
	require.NoError(t, err)
	require.Equal(t, []string{
		"https://api.example.com/repositories/acme/repo/pullrequests?page=2&state=OPEN",
		"https://api.example.com/repositories/acme/repo/pullrequests?page=3&state=OPEN",
	}, pages)
}

func TestRemainingPagesStartBeyondTotal(t *testing.T) {
	// A next link pointing past the computed total must not loop or
	// produce pages; size shrank between requests.
	env := Envelope{
		Size:    9,
		Pagelen: 10,
		Next:    "https://api.example.com/repositories/acme?page=2",
	}

	pages, err := RemainingPages(env)
	require.NoError(t, err)
	require.Empty(t, pages)
}

func TestRemainingPagesBadPageParam(t *testing.T) {
	_, err := RemainingPages(Envelope{Next: "https://api.example.com/repositories/acme?page=abc"})
	require.Error(t, err)

	_, err = RemainingPages(Envelope{Next: "https://api.example.com/repositories/acme"})
	require.Error(t, err)
}
