package notify

import (
	"os"
	"testing"

	"github.com/iSamBa/gym-manager-sub000/internal/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}
