package service

import (
	"context"
	"fmt"

	"clubsphere-server/internal/client"
	"clubsphere-server/internal/model"
	"clubsphere-server/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeProvider struct {
	sessions    map[string]*client.CheckoutSession
	createErr   error
	retrieveErr error
	lastCreate  *client.CreateSessionRequest
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{sessions: make(map[string]*client.CheckoutSession)}
}

func (f *fakeProvider) CreateSession(_ context.Context, req *client.CreateSessionRequest) (*client.CheckoutSession, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.lastCreate = req
	sess := &client.CheckoutSession{
		SessionID:     "cs_test_1",
		URL:           "https://checkout.example.com/c/pay/cs_test_1",
		PaymentStatus: model.PaymentStatusPending,
		AmountTotal:   req.UnitAmountCents,
		Currency:      req.Currency,
		CustomerEmail: req.CustomerEmail,
		Metadata:      req.Metadata,
	}
	f.sessions[sess.SessionID] = sess
	return sess, nil
}

func (f *fakeProvider) RetrieveSession(_ context.Context, sessionID string) (*client.CheckoutSession, error) {
	if f.retrieveErr != nil {
		return nil, f.retrieveErr
	}
	sess, ok := f.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("no such session %s", sessionID)
	}
	return sess, nil
}

type fakePaymentRepo struct {
	records   map[string]*model.PaymentRecord
	insertErr error
	findErr   error
	// findMiss makes the dedup lookup miss even when a record exists, to
	// simulate a concurrent confirmation landing between lookup and insert.
	findMiss bool
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{records: make(map[string]*model.PaymentRecord)}
}

func (f *fakePaymentRepo) FindByTransactionID(_ context.Context, transactionID string) (*model.PaymentRecord, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	if f.findMiss {
		return nil, nil
	}
	return f.records[transactionID], nil
}

func (f *fakePaymentRepo) Insert(_ context.Context, rec *model.PaymentRecord) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	if _, ok := f.records[rec.TransactionID]; ok {
		return fmt.Errorf("payment %s: %w", rec.TransactionID, repository.ErrDuplicate)
	}
	rec.ID = primitive.NewObjectID()
	f.records[rec.TransactionID] = rec
	return nil
}

func (f *fakePaymentRepo) FindByMemberEmail(_ context.Context, email string) ([]*model.PaymentRecord, error) {
	var out []*model.PaymentRecord
	for _, rec := range f.records {
		if rec.MemberEmail == email {
			out = append(out, rec)
		}
	}
	return out, nil
}

type fakeMembershipRepo struct {
	byID          map[primitive.ObjectID]*model.Membership
	insertErr     error
	markPaidCalls int
}

func newFakeMembershipRepo() *fakeMembershipRepo {
	return &fakeMembershipRepo{byID: make(map[primitive.ObjectID]*model.Membership)}
}

func (f *fakeMembershipRepo) FindByClubAndEmail(_ context.Context, clubID, email string) (*model.Membership, error) {
	for _, m := range f.byID {
		if m.ClubID == clubID && m.MemberEmail == email {
			return m, nil
		}
	}
	return nil, nil
}

func (f *fakeMembershipRepo) FindByMemberEmail(_ context.Context, email string) ([]*model.Membership, error) {
	var out []*model.Membership
	for _, m := range f.byID {
		if m.MemberEmail == email {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMembershipRepo) Insert(_ context.Context, m *model.Membership) (primitive.ObjectID, error) {
	if f.insertErr != nil {
		return primitive.NilObjectID, f.insertErr
	}
	for _, have := range f.byID {
		if have.ClubID == m.ClubID && have.MemberEmail == m.MemberEmail {
			return primitive.NilObjectID, fmt.Errorf("membership %s/%s: %w", m.ClubID, m.MemberEmail, repository.ErrDuplicate)
		}
	}
	m.ID = primitive.NewObjectID()
	f.byID[m.ID] = m
	return m.ID, nil
}

func (f *fakeMembershipRepo) MarkPaid(_ context.Context, id primitive.ObjectID, amountCents int64, transactionID string) error {
	m, ok := f.byID[id]
	if !ok {
		return fmt.Errorf("no membership with id %s", id.Hex())
	}
	f.markPaidCalls++
	m.Status = model.PaymentStatusPaid
	m.AmountCents = amountCents
	m.TransactionID = transactionID
	return nil
}

func (f *fakeMembershipRepo) count() int {
	return len(f.byID)
}

type fakeClubRepo struct {
	counts map[string]int64
	incErr error
}

func newFakeClubRepo() *fakeClubRepo {
	return &fakeClubRepo{counts: make(map[string]int64)}
}

func (f *fakeClubRepo) Find(_ context.Context) ([]*model.Club, error) {
	return nil, nil
}

func (f *fakeClubRepo) FindByID(_ context.Context, id string) (*model.Club, error) {
	count, ok := f.counts[id]
	if !ok {
		return nil, nil
	}
	return &model.Club{MembersCount: count}, nil
}

func (f *fakeClubRepo) IncrementMembersCount(_ context.Context, clubID string, delta int64) error {
	if f.incErr != nil {
		return f.incErr
	}
	f.counts[clubID] += delta
	return nil
}

type fakeRegistrationRepo struct {
	regs map[string]*model.EventRegistration
}

func newFakeRegistrationRepo() *fakeRegistrationRepo {
	return &fakeRegistrationRepo{regs: make(map[string]*model.EventRegistration)}
}

func regKey(eventID, email string) string { return eventID + "|" + email }

func (f *fakeRegistrationRepo) FindByEventAndEmail(_ context.Context, eventID, email string) (*model.EventRegistration, error) {
	return f.regs[regKey(eventID, email)], nil
}

func (f *fakeRegistrationRepo) Insert(_ context.Context, reg *model.EventRegistration) (primitive.ObjectID, error) {
	key := regKey(reg.EventID, reg.MemberEmail)
	if _, ok := f.regs[key]; ok {
		return primitive.NilObjectID, fmt.Errorf("registration %s: %w", key, repository.ErrDuplicate)
	}
	reg.ID = primitive.NewObjectID()
	f.regs[key] = reg
	return reg.ID, nil
}

type fakeEventRepo struct {
	events []*model.Event
}

func (f *fakeEventRepo) Find(_ context.Context) ([]*model.Event, error) {
	return f.events, nil
}

func (f *fakeEventRepo) FindByID(_ context.Context, id string) (*model.Event, error) {
	for _, e := range f.events {
		if e.ID.Hex() == id {
			return e, nil
		}
	}
	return nil, nil
}

// passthroughTxn runs the unit directly, like the sequential runner does.
type passthroughTxn struct{}

func (passthroughTxn) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
