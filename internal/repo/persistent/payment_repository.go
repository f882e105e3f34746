package persistent

import (
	"errors"

	"openlove/pkg/models"

	"gorm.io/gorm"
)

type PaymentRepository interface {
	CreateSubscription(sub *models.Subscription) error
	GetByProviderRef(provider models.PaymentProvider, ref string) (*models.Subscription, error)
	GetActiveByUser(userID string) (*models.Subscription, error)
	Update(sub *models.Subscription) error
	CreateAudit(audit *models.PaymentAudit) error
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) CreateSubscription(sub *models.Subscription) error {
	return r.db.Create(sub).Error
}

func (r *paymentRepository) GetByProviderRef(provider models.PaymentProvider, ref string) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.db.Where("provider = ? AND provider_ref = ?", provider, ref).First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sub, nil
}

func (r *paymentRepository) GetActiveByUser(userID string) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.db.Where("user_id = ? AND status = ?", userID, models.SubscriptionActive).
		Order("created_at DESC").First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sub, nil
}

func (r *paymentRepository) Update(sub *models.Subscription) error {
	return r.db.Save(sub).Error
}

func (r *paymentRepository) CreateAudit(audit *models.PaymentAudit) error {
	return r.db.Create(audit).Error
}
