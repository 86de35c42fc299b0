package stock

import (
	"testing"

	"stock-checker/core/storage/mocks"
	"stock-checker/core/tableio"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestLoader(t *testing.T) {
	feature := NewFeature(defaultConfig(), tableio.Deps{Storage: new(mocks.Client)}, "test-bucket", zap.NewNop())

	assert.Equal(t, "stock", feature.Name())
	assert.True(t, feature.IsEnabled())

	app := fiber.New()
	err := feature.Load(app)
	assert.NoError(t, err)
}
