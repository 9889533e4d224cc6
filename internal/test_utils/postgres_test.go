package test_utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

func TestStartContainer(t *testing.T) {
	t.Run("should report a panicking runtime as an error", func(t *testing.T) {
		var container *postgres.PostgresContainer
		var err error

		assert.NotPanics(t, func() {
			container, err = startContainer(func() (*postgres.PostgresContainer, error) {
				panic("rootless Docker not found")
			})
		})

		assert.Nil(t, container)
		assert.ErrorContains(t, err, "rootless Docker not found")
	})

	t.Run("should pass start errors through", func(t *testing.T) {
		startErr := errors.New("image pull failed")

		_, err := startContainer(func() (*postgres.PostgresContainer, error) {
			return nil, startErr
		})

		assert.ErrorIs(t, err, startErr)
	})
}
