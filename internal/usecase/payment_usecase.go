package usecase

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"openlove/internal/gateway/abacatepay"
	"openlove/internal/gateway/stripegw"
	"openlove/internal/repo/persistent"
	"openlove/pkg/logger"
	"openlove/pkg/models"
	"openlove/pkg/plan"
	"openlove/pkg/queue"

	"github.com/stripe/stripe-go/v78"
)

var (
	ErrInvalidTier          = errors.New("unknown or non-purchasable plan tier")
	ErrNoActiveSubscription = errors.New("no active subscription")
)

// CheckoutResult carries whichever redirect artifact the provider
// produced: a hosted URL for Stripe, a QR code payload for PIX.
type CheckoutResult struct {
	Provider    models.PaymentProvider `json:"provider"`
	CheckoutURL string                 `json:"checkout_url,omitempty"`
	ChargeID    string                 `json:"charge_id,omitempty"`
	PixCode     string                 `json:"pix_code,omitempty"`
	PixCodeB64  string                 `json:"pix_code_base64,omitempty"`
	ExpiresAt   string                 `json:"expires_at,omitempty"`
	AmountCents int64                  `json:"amount_cents"`
}

type PaymentUseCase interface {
	CreateStripeCheckout(userID string, tier plan.Tier) (*CheckoutResult, error)
	HandleStripeWebhook(payload []byte, sigHeader string) error
	CreatePixCharge(userID string, tier plan.Tier) (*CheckoutResult, error)
	ConfirmPixCharge(userID, chargeID string) (bool, error)
	HandlePixWebhook(payload []byte, signature string) error
	CancelSubscription(userID string) error
	GetSubscription(userID string) (*models.Subscription, error)
}

type paymentUseCase struct {
	paymentRepo persistent.PaymentRepository
	userRepo    persistent.UserRepository
	stripeGW    stripegw.Gateway
	pixGW       abacatepay.Gateway
	queueClient *queue.Client
	logger      *logger.Logger
}

func NewPaymentUseCase(
	paymentRepo persistent.PaymentRepository,
	userRepo persistent.UserRepository,
	stripeGW stripegw.Gateway,
	pixGW abacatepay.Gateway,
	queueClient *queue.Client,
	logger *logger.Logger,
) PaymentUseCase {
	return &paymentUseCase{
		paymentRepo: paymentRepo,
		userRepo:    userRepo,
		stripeGW:    stripeGW,
		pixGW:       pixGW,
		queueClient: queueClient,
		logger:      logger,
	}
}

func (uc *paymentUseCase) CreateStripeCheckout(userID string, tier plan.Tier) (*CheckoutResult, error) {
	priceCents, ok := plan.MonthlyPriceCents[tier]
	if !ok {
		return nil, ErrInvalidTier
	}

	user, _, err := resolveViewer(uc.userRepo, userID)
	if err != nil {
		return nil, err
	}

	session, err := uc.stripeGW.CreateCheckoutSession(user.ID, user.Email, tier)
	if err != nil {
		uc.logger.Error("Failed to create stripe checkout for user %s: %v", userID, err)
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	sub := &models.Subscription{
		UserID:      user.ID,
		Tier:        tier,
		Status:      models.SubscriptionPending,
		Provider:    models.ProviderStripe,
		ProviderRef: session.ID,
		PriceCents:  priceCents,
	}
	if err := uc.paymentRepo.CreateSubscription(sub); err != nil {
		return nil, fmt.Errorf("failed to record pending subscription: %w", err)
	}

	return &CheckoutResult{
		Provider:    models.ProviderStripe,
		CheckoutURL: session.URL,
		AmountCents: priceCents,
	}, nil
}

// HandleStripeWebhook verifies the event signature and activates the
// subscription on checkout completion. Unhandled event types are
// acknowledged and ignored.
func (uc *paymentUseCase) HandleStripeWebhook(payload []byte, sigHeader string) error {
	event, err := uc.stripeGW.ConstructWebhookEvent(payload, sigHeader)
	if err != nil {
		return fmt.Errorf("invalid webhook signature: %w", err)
	}

	switch event.Type {
	case "checkout.session.completed":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			return fmt.Errorf("failed to decode checkout session: %w", err)
		}
		return uc.completeStripeCheckout(&session)
	default:
		uc.logger.Info("Ignoring stripe event type: %s", event.Type)
		return nil
	}
}

func (uc *paymentUseCase) completeStripeCheckout(session *stripe.CheckoutSession) error {
	userID := session.Metadata["user_id"]
	tier := plan.Tier(session.Metadata["tier"])
	if userID == "" || !plan.Valid(tier) {
		uc.logger.Warn("Stripe session %s missing usable metadata", session.ID)
		return nil
	}

	sub, err := uc.paymentRepo.GetByProviderRef(models.ProviderStripe, session.ID)
	if err != nil {
		return fmt.Errorf("failed to load subscription: %w", err)
	}
	if sub == nil {
		// Session created outside this instance; recover the record.
		sub = &models.Subscription{
			UserID:      userID,
			Tier:        tier,
			Provider:    models.ProviderStripe,
			ProviderRef: session.ID,
			PriceCents:  plan.MonthlyPriceCents[tier],
		}
		if err := uc.paymentRepo.CreateSubscription(sub); err != nil {
			return fmt.Errorf("failed to recover subscription: %w", err)
		}
	}
	if sub.Status == models.SubscriptionActive {
		// Webhook retry for an already-activated session.
		return nil
	}

	// Keep the remote subscription id so cancellation can reach Stripe.
	if session.Subscription != nil && session.Subscription.ID != "" {
		sub.ProviderRef = session.Subscription.ID
	}

	return uc.activate(sub)
}

func (uc *paymentUseCase) CreatePixCharge(userID string, tier plan.Tier) (*CheckoutResult, error) {
	priceCents, ok := plan.MonthlyPriceCents[tier]
	if !ok {
		return nil, ErrInvalidTier
	}

	user, _, err := resolveViewer(uc.userRepo, userID)
	if err != nil {
		return nil, err
	}

	charge, err := uc.pixGW.CreatePixCharge(user.ID, priceCents, fmt.Sprintf("OpenLove %s plan", tier))
	if err != nil {
		uc.logger.Error("Failed to create pix charge for user %s: %v", userID, err)
		return nil, fmt.Errorf("failed to create pix charge: %w", err)
	}

	sub := &models.Subscription{
		UserID:      user.ID,
		Tier:        tier,
		Status:      models.SubscriptionPending,
		Provider:    models.ProviderPix,
		ProviderRef: charge.ID,
		PriceCents:  priceCents,
	}
	if err := uc.paymentRepo.CreateSubscription(sub); err != nil {
		return nil, fmt.Errorf("failed to record pending subscription: %w", err)
	}

	return &CheckoutResult{
		Provider:    models.ProviderPix,
		ChargeID:    charge.ID,
		PixCode:     charge.BRCode,
		PixCodeB64:  charge.BRCodeB64,
		ExpiresAt:   charge.ExpiresAt,
		AmountCents: priceCents,
	}, nil
}

// ConfirmPixCharge polls the provider for a pending charge. PIX has no
// synchronous confirmation, so clients call this after the user reports
// paying; the webhook covers the cases where they never do.
func (uc *paymentUseCase) ConfirmPixCharge(userID, chargeID string) (bool, error) {
	sub, err := uc.paymentRepo.GetByProviderRef(models.ProviderPix, chargeID)
	if err != nil {
		return false, fmt.Errorf("failed to load subscription: %w", err)
	}
	if sub == nil || sub.UserID != userID {
		return false, ErrNoActiveSubscription
	}
	if sub.Status == models.SubscriptionActive {
		return true, nil
	}

	status, err := uc.pixGW.GetChargeStatus(chargeID)
	if err != nil {
		return false, fmt.Errorf("failed to check charge status: %w", err)
	}
	if status != "PAID" {
		return false, nil
	}

	if err := uc.activate(sub); err != nil {
		return false, err
	}
	return true, nil
}

func (uc *paymentUseCase) HandlePixWebhook(payload []byte, signature string) error {
	if !uc.pixGW.VerifyWebhookSignature(payload, signature) {
		return fmt.Errorf("invalid webhook signature")
	}

	var event struct {
		Event string `json:"event"`
		Data  struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"data"`
	}
	if err := json.Unmarshal(payload, &event); err != nil {
		return fmt.Errorf("failed to decode pix webhook: %w", err)
	}

	if event.Event != "billing.paid" && event.Data.Status != "PAID" {
		uc.logger.Info("Ignoring pix event: %s", event.Event)
		return nil
	}

	sub, err := uc.paymentRepo.GetByProviderRef(models.ProviderPix, event.Data.ID)
	if err != nil {
		return fmt.Errorf("failed to load subscription: %w", err)
	}
	if sub == nil {
		uc.logger.Warn("Pix webhook for unknown charge %s", event.Data.ID)
		return nil
	}
	if sub.Status == models.SubscriptionActive {
		return nil
	}

	return uc.activate(sub)
}

// activate flips the subscription to active and upgrades the user. The
// audit row and the notification are best-effort; a failure there never
// rolls the activation back.
func (uc *paymentUseCase) activate(sub *models.Subscription) error {
	expiresAt := time.Now().UTC().Add(plan.Duration(sub.Tier))
	sub.Status = models.SubscriptionActive
	sub.CurrentPeriodEnd = &expiresAt

	if err := uc.paymentRepo.Update(sub); err != nil {
		return fmt.Errorf("failed to update subscription: %w", err)
	}
	if err := uc.userRepo.ActivatePremium(sub.UserID, sub.Tier, expiresAt); err != nil {
		return fmt.Errorf("failed to activate premium: %w", err)
	}

	if err := uc.paymentRepo.CreateAudit(&models.PaymentAudit{
		UserID:      sub.UserID,
		Provider:    sub.Provider,
		ProviderRef: sub.ProviderRef,
		AmountCents: sub.PriceCents,
		Currency:    "BRL",
		Status:      "paid",
	}); err != nil {
		uc.logger.Error("Failed to write payment audit for %s: %v", sub.UserID, err)
	}

	if uc.queueClient != nil {
		go func() {
			task := map[string]interface{}{
				"type":     "payment",
				"user_id":  sub.UserID,
				"priority": 7,
			}
			if err := uc.queueClient.PublishNotificationTask(task); err != nil {
				uc.logger.Error("Failed to publish payment notification: %v", err)
			}
		}()
	}

	return nil
}

func (uc *paymentUseCase) CancelSubscription(userID string) error {
	sub, err := uc.paymentRepo.GetActiveByUser(userID)
	if err != nil {
		return fmt.Errorf("failed to load subscription: %w", err)
	}
	if sub == nil {
		return ErrNoActiveSubscription
	}

	if sub.Provider == models.ProviderStripe {
		if err := uc.stripeGW.CancelSubscription(sub.ProviderRef); err != nil {
			uc.logger.Error("Failed to cancel stripe subscription %s: %v", sub.ProviderRef, err)
			return fmt.Errorf("failed to cancel subscription: %w", err)
		}
	}

	sub.Status = models.SubscriptionCanceled
	if err := uc.paymentRepo.Update(sub); err != nil {
		return fmt.Errorf("failed to update subscription: %w", err)
	}

	// Access runs out at the period end; no immediate downgrade. The
	// tier resolution on read handles the expiry.
	return nil
}

func (uc *paymentUseCase) GetSubscription(userID string) (*models.Subscription, error) {
	sub, err := uc.paymentRepo.GetActiveByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load subscription: %w", err)
	}
	if sub == nil {
		return nil, ErrNoActiveSubscription
	}
	return sub, nil
}
