package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"k8s.io/klog/v2"

	"github.com/borsosbarna/graph-labeling/cmd/radiolabel/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	cmd := app.NewCommand(os.Stdout)
	err := cmd.ExecuteContext(ctx)
	code := app.HandleError(os.Stderr, err)
	stop()
	klog.Flush()
	os.Exit(code)
}
