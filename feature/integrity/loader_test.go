package integrity

import (
	"testing"

	"stock-manager/core/storage/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestLoader(t *testing.T) {
	mockClient := new(mocks.Client)
	feature := NewFeature(mockClient, "test-bucket", setupRepository(t), zap.NewNop())

	assert.Equal(t, "integrity", feature.Name())
	assert.True(t, feature.IsEnabled())

	app := fiber.New()
	err := feature.Load(app)
	assert.NoError(t, err)
}

func TestLoader_DisabledWithoutDatabase(t *testing.T) {
	feature := NewFeature(nil, "", nil, zap.NewNop())
	assert.False(t, feature.IsEnabled())
}
