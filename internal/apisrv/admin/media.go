package admin

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// imageName builds a unique object name for an uploaded product image.
func imageName() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.NewString()[:8])
}
