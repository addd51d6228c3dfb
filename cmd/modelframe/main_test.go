package main

import (
	"testing"
	"time"

	"github.com/aouyang1/go-modelframe/dataset"
	"github.com/aouyang1/go-modelframe/formula"
	"github.com/aouyang1/go-modelframe/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrossValidate(t *testing.T) {
	daily, err := dataset.SimulateDailyCounts(140, time.Date(2013, 1, 1, 0, 0, 0, 0, time.UTC))
	require.Nil(t, err)

	form, err := formula.Parse("n ~ wday")
	require.Nil(t, err)

	assert.Nil(t, crossValidate(zerolog.Nop(), daily, form, 3))

	err = crossValidate(zerolog.Nop(), daily, form, 200)
	assert.ErrorIs(t, err, models.ErrInsufficientSamples)
}
