package inventory

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestLoader(t *testing.T) {
	svc, _ := newTestService(t, nil)
	feature := &Feature{service: svc, handler: NewHandler(svc)}

	assert.Equal(t, "inventory", feature.Name())
	assert.True(t, feature.IsEnabled())

	app := fiber.New()
	assert.NoError(t, feature.Load(app))

	assert.False(t, NewFeature(Options{}).IsEnabled())
}
