package app

import (
	"context"
	"errors"
)

// Start runs the loop (and the indicator poller, if any) in the
// background.
func (app *Application) Start(ctx context.Context) error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}

	app.ctx, app.cancel = context.WithCancel(ctx)
	app.done = make(chan struct{})

	go func() {
		defer close(app.done)
		if err := app.loop.Run(app.ctx); err != nil && !errors.Is(err, context.Canceled) {
			app.log.Error(err, "run loop exited")
		}
	}()

	if app.poller != nil {
		go func() {
			if err := app.poller.Run(app.ctx); err != nil && !errors.Is(err, context.Canceled) {
				app.log.Error(err, "indicator poller exited")
			}
		}()
	}
	return nil
}

// Stop drops queued keys and stops the loop.
func (app *Application) Stop() {
	if !app.running.CompareAndSwap(true, false) {
		return
	}
	app.queue.Stop()
	app.cancel()
	app.loop.Stop()
	<-app.done
}

// Run starts the application and blocks until ctx is done.
func (app *Application) Run(ctx context.Context) error {
	if err := app.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	app.Stop()
	return nil
}

// IsRunning reports whether Start has been called without Stop.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// do runs fn on the loop and waits for it.
func (app *Application) do(ctx context.Context, op, target string, fn func(ctx context.Context) error) error {
	if !app.running.Load() {
		return NewOperationError(op, target, ErrNotRunning)
	}
	// fn may still run after Sync gives up on ctx; the buffer lets it finish
	// without a reader.
	result := make(chan error, 1)
	if syncErr := app.loop.Sync(ctx, func() { result <- fn(app.ctx) }); syncErr != nil {
		return NewOperationError(op, target, syncErr)
	}
	if err := <-result; err != nil {
		return NewOperationError(op, target, err)
	}
	return nil
}
