package workflows

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"

	"github.com/levaja/marketplace-api/internal/domains/orders/application"
	types "github.com/levaja/marketplace-api/internal/domains/orders/application/types"
	"github.com/levaja/marketplace-api/internal/domains/orders/domain"
	"github.com/levaja/marketplace-api/internal/domains/orders/ports"
	orderactivities "github.com/levaja/marketplace-api/internal/platform/temporal/activities/orders"
	orderworkflows "github.com/levaja/marketplace-api/internal/platform/temporal/workflows/orders"
)

var (
	_ ports.WorkflowOrchestrator = (*TemporalOrderWorkflows)(nil)
	_ ports.WorkflowOrchestrator = (*InlineOrderWorkflows)(nil)
)

// TemporalOrderWorkflows runs checkout on a Temporal cluster.
type TemporalOrderWorkflows struct {
	client    client.Client
	taskQueue string
}

func NewTemporalOrderWorkflows(c client.Client) *TemporalOrderWorkflows {
	return &TemporalOrderWorkflows{client: c, taskQueue: orderworkflows.CheckoutTaskQueue}
}

// Checkout starts the checkout workflow and waits for the placed order.
func (o *TemporalOrderWorkflows) Checkout(ctx context.Context, input types.CheckoutInput) (*domain.Order, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal order workflows not configured")
	}
	traceComponent := workflowTraceComponent(ctx)
	workflowID := buildCheckoutWorkflowID(input, traceComponent)
	options := client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: o.taskQueue,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		orderworkflows.CheckoutWorkflowName,
		orderworkflows.CheckoutWorkflowInput{Command: input, TraceID: traceComponent},
	)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) && strings.TrimSpace(input.IdempotencyKey) != "" {
			run = o.client.GetWorkflow(ctx, workflowID, alreadyStarted.RunId)
		} else {
			return nil, err
		}
	}
	var order domain.Order
	if err := run.Get(ctx, &order); err != nil {
		return nil, translateWorkflowError(err)
	}
	return &order, nil
}

// notifiedCapacity bounds how many idempotent orders the inline path remembers as notified.
const notifiedCapacity = 4096

// InlineOrderWorkflows runs checkout in-process when Temporal is disabled.
// Replays of recent idempotent checkouts are not notified again.
type InlineOrderWorkflows struct {
	service  ports.Service
	notified *recentSet
}

func NewInlineOrderWorkflows(service ports.Service) *InlineOrderWorkflows {
	return &InlineOrderWorkflows{service: service, notified: newRecentSet(notifiedCapacity)}
}

// Checkout places the order and sends the confirmation notice; a failed notice does not fail checkout.
func (o *InlineOrderWorkflows) Checkout(ctx context.Context, input types.CheckoutInput) (*domain.Order, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline order workflows not configured")
	}
	order, err := o.service.PlaceOrder(ctx, input)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.IdempotencyKey) != "" {
		if seen := o.notified.add(order.ID); seen {
			return order, nil
		}
	}
	_ = o.service.NotifyPlaced(ctx, order.ID)
	return order, nil
}

// recentSet remembers the last capacity ids, evicting the oldest first.
type recentSet struct {
	mu    sync.Mutex
	ids   map[string]struct{}
	order []string
	next  int
}

func newRecentSet(capacity int) *recentSet {
	return &recentSet{ids: make(map[string]struct{}, capacity), order: make([]string, 0, capacity)}
}

// add records id and reports whether it was already present.
func (r *recentSet) add(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.ids[id]; ok {
		return true
	}
	if len(r.order) < cap(r.order) {
		r.order = append(r.order, id)
	} else {
		delete(r.ids, r.order[r.next])
		r.order[r.next] = id
		r.next = (r.next + 1) % len(r.order)
	}
	r.ids[id] = struct{}{}
	return false
}

func (r *recentSet) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.ids)
}

// translateWorkflowError restores the local sentinels for business failures raised by activities.
func translateWorkflowError(err error) error {
	var appErr *temporal.ApplicationError
	if !errors.As(err, &appErr) {
		return err
	}
	switch appErr.Type() {
	case orderactivities.ErrorTypeEmptyCart:
		return application.ErrEmptyCart
	case orderactivities.ErrorTypeIdempotencyConflict:
		return ports.ErrIdempotencyConflict
	case orderactivities.ErrorTypeInvalidInput:
		return fmt.Errorf("%w: %s", application.ErrInvalidInput, appErr.Message())
	case orderactivities.ErrorTypeConflict:
		return fmt.Errorf("%w: %s", application.ErrConflict, appErr.Message())
	}
	return err
}

func buildCheckoutWorkflowID(input types.CheckoutInput, traceComponent string) string {
	if key := strings.TrimSpace(input.IdempotencyKey); key != "" {
		return fmt.Sprintf("order-checkout-idem-%s", hashIdempotencyKey(input.UserID+":"+key))
	}
	return fmt.Sprintf("order-checkout-%s-%s", input.UserID, traceComponent)
}

func hashIdempotencyKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:8])
}

func workflowTraceComponent(ctx context.Context) string {
	if traceID := workflowTraceID(ctx); traceID != "" {
		return traceID
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}

func workflowTraceID(ctx context.Context) string {
	spanCtx := oteltrace.SpanFromContext(ctx).SpanContext()
	if !spanCtx.IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}
