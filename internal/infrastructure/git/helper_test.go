package git

import (
	"context"
	"testing"
	"time"
)

func TestTimeoutHelpers(t *testing.T) {
	ctx := context.Background()
	localCtx, cancelLocal := withLocalTimeout(ctx)
	defer cancelLocal()

	if dl, ok := localCtx.Deadline(); !ok {
		t.Fatal("expected local context to have deadline")
	} else if time.Until(dl) > DefaultLocalTimeout {
		t.Fatalf("deadlines should not exceed %v", DefaultLocalTimeout)
	}

	shortCtx, shortCancel := context.WithTimeout(ctx, 1*time.Second)
	defer shortCancel()
	withShort, cancelShort := withLocalTimeout(shortCtx)
	defer cancelShort()
	dl, _ := withShort.Deadline()
	if diff := time.Until(dl); diff > 2*time.Second {
		t.Fatalf("expected short deadline to remain under 2s, got %v", diff)
	}
}
