package checkout

import "context"

// CheckoutSink receives the finished cart summary. It has no way to report
// failure back to the caller.
type CheckoutSink interface {
	SendCheckoutMessage(ctx context.Context, text string)
}

// InquirySink receives a single-product inquiry.
type InquirySink interface {
	SendInquiryMessage(ctx context.Context, text string)
}

// CheckoutSinkFunc adapts a function to CheckoutSink.
type CheckoutSinkFunc func(ctx context.Context, text string)

func (f CheckoutSinkFunc) SendCheckoutMessage(ctx context.Context, text string) { f(ctx, text) }

// InquirySinkFunc adapts a function to InquirySink.
type InquirySinkFunc func(ctx context.Context, text string)

func (f InquirySinkFunc) SendInquiryMessage(ctx context.Context, text string) { f(ctx, text) }
