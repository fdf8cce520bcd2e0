package sync

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/iudanet/cloudalerts/internal/client/storage"
	"github.com/iudanet/cloudalerts/internal/models"
	"github.com/iudanet/cloudalerts/internal/useralerts"
	"github.com/iudanet/cloudalerts/pkg/api"
)

// ErrUnknownAction indicates a packet whose action code is not handled.
var ErrUnknownAction = errors.New("unknown action")

// maxPacketSize limits one JSON line of the packet stream.
const maxPacketSize = 4 << 20

//go:generate moq -out nodestore_mock.go . NodeStore

// NodeStore keeps the local copy of the user and node tree the engine
// resolves names against.
type NodeStore interface {
	PutUser(ctx context.Context, u models.User) error
	PutNode(ctx context.Context, n models.Node) error
	GetNode(ctx context.Context, h models.Handle) (models.Node, error)
	DeleteNode(ctx context.Context, h models.Handle) error
}

// Service feeds server packets into the alert engine and keeps the node
// store and session metadata in step with them.
type Service struct {
	alerts   *useralerts.UserAlerts
	nodes    NodeStore
	metadata storage.MetadataStorage
	logger   *slog.Logger
}

// NewService creates a packet processor. metadata may be nil.
func NewService(alerts *useralerts.UserAlerts, nodes NodeStore, metadata storage.MetadataStorage, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		alerts:   alerts,
		nodes:    nodes,
		metadata: metadata,
		logger:   logger,
	}
}

// Result contains packet processing results
type Result struct {
	Packets int // количество прочитанных пакетов
	Applied int // количество примененных пакетов
	Skipped int // количество пропущенных пакетов (неизвестные или битые)
	Alerts  int // количество алертов в логе после обработки
	Notify  int // количество алертов в очереди уведомлений
}

// Restore reinstates the seen markers of the previous session.
func (s *Service) Restore(ctx context.Context) error {
	if s.metadata == nil {
		return nil
	}

	m, err := s.metadata.GetSeenMarkers(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrMarkersNotFound) {
			s.logger.Debug("No seen markers saved yet")
			return nil
		}
		return fmt.Errorf("failed to load seen markers: %w", err)
	}

	s.alerts.RestoreSeenMarkers(m)
	return nil
}

// Catchup runs the catch-up replay and saves the resulting seen markers.
// A malformed replay still leaves the engine caught up; its error is returned.
func (s *Service) Catchup(ctx context.Context, data []byte) error {
	s.alerts.BeginCatchup()

	if err := s.alerts.ProcessCatchup(data); err != nil {
		return fmt.Errorf("catch-up failed: %w", err)
	}

	if s.metadata != nil {
		if err := s.metadata.SaveSeenMarkers(ctx, s.alerts.LastSeenMarkers()); err != nil {
			s.logger.Warn("Failed to save seen markers", "error", err)
		}
	}
	return nil
}

// Process reads one JSON packet per line from r and applies them in order.
// Malformed and unknown packets are logged and skipped.
func (s *Service) Process(ctx context.Context, r io.Reader) (*Result, error) {
	result := &Result{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxPacketSize)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		result.Packets++

		var p api.ActionPacket
		if err := json.Unmarshal(line, &p); err != nil {
			s.logger.Warn("Skipping malformed packet", "line", result.Packets, "error", err)
			result.Skipped++
			continue
		}

		if err := s.Apply(ctx, &p); err != nil {
			s.logger.Warn("Skipping packet", "line", result.Packets, "action", p.Action, "error", err)
			result.Skipped++
			continue
		}
		result.Applied++
	}

	if err := scanner.Err(); err != nil {
		return result, fmt.Errorf("failed to read packets: %w", err)
	}

	result.Alerts = s.alerts.Len()
	result.Notify = len(s.alerts.Notifications())

	s.logger.Info("Packets processed",
		"packets", result.Packets,
		"applied", result.Applied,
		"skipped", result.Skipped,
		"alerts", result.Alerts)

	return result, nil
}

// Apply routes one packet to the engine.
func (s *Service) Apply(ctx context.Context, p *api.ActionPacket) error {
	switch p.Action {
	case api.ActionUserAlert:
		return s.applyUserAlert(p)
	case api.ActionNodesAdded:
		return s.applyNodesAdded(ctx, p)
	case api.ActionNodeDeleted:
		return s.applyNodeDeleted(ctx, p)
	case api.ActionNodeUpdated:
		return s.applyNodeUpdated(ctx, p)
	case api.ActionShare:
		return s.applyShare(p)
	case api.ActionContactChange:
		return s.applyContactChange(ctx, p)
	case api.ActionIncomingRequest, api.ActionIncomingUpdated, api.ActionOutgoingUpdated,
		api.ActionPayment, api.ActionPaymentReminder, api.ActionTakedown:
		s.applyLocalAlert(p)
		return nil
	case api.ActionAcknowledged:
		s.alerts.OnAcknowledgeReceived()
		return nil
	case api.ActionBatchEnd:
		return s.applyBatchEnd(ctx)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, p.Action)
	}
}

func (s *Service) applyUserAlert(p *api.ActionPacket) error {
	var raw api.RawAlert
	if !p.Fields.Decode(api.ActionUserAlert, &raw) {
		return fmt.Errorf("user alert packet without record")
	}

	if s.alerts.IsUnwantedAlert(raw.Type, raw.Fields.Int("c", -1)) {
		s.logger.Debug("Filtered user alert", "type", raw.Type)
		return nil
	}

	if !s.alerts.AddRaw(&raw) {
		s.logger.Debug("Unknown user alert type", "type", raw.Type)
	}
	return nil
}

func (s *Service) timestamp(p *api.ActionPacket) int64 {
	return p.Fields.Int64("ts", s.alerts.Now())
}

func (s *Service) originator(p *api.ActionPacket) models.Handle {
	return p.Fields.Handle("ou", models.UserHandleSize, models.Undef)
}

func (s *Service) applyNodesAdded(ctx context.Context, p *api.ActionPacket) error {
	var tree api.NodeTree
	if !p.Fields.Decode(api.ActionNodesAdded, &tree) {
		return fmt.Errorf("nodes packet without tree")
	}

	ou := s.originator(p)
	ts := s.timestamp(p)

	s.alerts.BeginNotingSharedNodes()
	for _, rec := range tree.Nodes {
		h, ok := models.DecodeHandle(rec.Handle, models.NodeHandleSize)
		if !ok {
			s.logger.Warn("Skipping node with invalid handle", "handle", rec.Handle)
			continue
		}
		parent, ok := models.DecodeHandle(rec.Parent, models.NodeHandleSize)
		if !ok {
			parent = models.Undef
		}

		n := models.Node{Handle: h, Parent: parent, Name: rec.Name, Kind: models.NodeKind(rec.Kind)}
		if err := s.nodes.PutNode(ctx, n); err != nil {
			s.alerts.ConvertNotedSharedNodes(true, ou)
			return fmt.Errorf("failed to store node: %w", err)
		}
		s.alerts.NoteSharedNode(ou, n.Kind, ts, &n, models.TypeNewSharedNodes)
	}
	s.alerts.ConvertNotedSharedNodes(true, ou)
	return nil
}

func (s *Service) lookupNode(ctx context.Context, p *api.ActionPacket) (*models.Node, error) {
	h := p.Fields.Handle("n", models.NodeHandleSize, models.Undef)
	if h.IsUndef() {
		return nil, fmt.Errorf("packet without node handle")
	}

	n, err := s.nodes.GetNode(ctx, h)
	if err != nil {
		return nil, fmt.Errorf("failed to get node %s: %w", h, err)
	}
	return &n, nil
}

func (s *Service) applyNodeDeleted(ctx context.Context, p *api.ActionPacket) error {
	n, err := s.lookupNode(ctx, p)
	if err != nil {
		return err
	}
	ou := s.originator(p)

	s.alerts.BeginNotingSharedNodes()
	if s.alerts.IsHandleInAlertsAsRemoved(n.Handle) {
		// удаление уже есть в алертах или в stash, повторно не ставим
		s.logger.Debug("Node already alerted as removed", "node", n.Handle)
		s.alerts.ConvertNotedSharedNodes(false, ou)
	} else {
		s.alerts.NoteSharedNode(ou, n.Kind, s.timestamp(p), n, models.TypeRemovedSharedNode)
		s.alerts.StashDeletedNotedSharedNodes(ou)
	}

	if ou == s.alerts.Me() {
		if err := s.alerts.RemoveNodeAlerts(n); err != nil {
			return err
		}
	}

	if err := s.nodes.DeleteNode(ctx, n.Handle); err != nil {
		return fmt.Errorf("failed to delete node: %w", err)
	}
	return nil
}

func (s *Service) applyNodeUpdated(ctx context.Context, p *api.ActionPacket) error {
	n, err := s.lookupNode(ctx, p)
	if err != nil {
		return err
	}

	if name := p.Fields.String("name", ""); name != "" && name != n.Name {
		n.Name = name
		if err := s.nodes.PutNode(ctx, *n); err != nil {
			return fmt.Errorf("failed to store node: %w", err)
		}
	}

	return s.alerts.SetNewNodeAlertToUpdateNodeAlert(n)
}

func (s *Service) applyShare(p *api.ActionPacket) error {
	folder := p.Fields.Handle("n", models.NodeHandleSize, models.Undef)
	if folder.IsUndef() {
		return fmt.Errorf("share packet without folder")
	}
	owner := p.Fields.Handle("o", models.UserHandleSize, models.Undef)

	if !s.alerts.IsUnwantedAlert(models.TypeNewShare, -1) {
		s.alerts.Add(models.NewShareAlert(folder, owner, "", s.timestamp(p), s.alerts.NextID()))
	}
	// содержимое шары придет следующим пакетом, отдельные узлы не алертим
	s.alerts.IgnoreNextSharedNodesUnder(folder)
	return nil
}

func (s *Service) applyContactChange(ctx context.Context, p *api.ActionPacket) error {
	var contacts []api.ContactRecord
	if !p.Fields.Decode("u", &contacts) {
		return fmt.Errorf("contact packet without users")
	}

	ts := s.timestamp(p)
	s.alerts.StartProvisional()
	for _, c := range contacts {
		h, ok := models.DecodeHandle(c.Handle, models.UserHandleSize)
		if !ok {
			continue
		}
		if c.Email != "" {
			if err := s.nodes.PutUser(ctx, models.User{Handle: h, Email: c.Email}); err != nil {
				s.logger.Warn("Failed to store contact", "user", h, "error", err)
			}
		}
		if s.alerts.IsUnwantedAlert(models.TypeContactChange, c.Action) {
			continue
		}
		s.alerts.Add(models.NewContactChange(c.Action, h, c.Email, ts, s.alerts.NextID()))
	}
	s.alerts.EvalProvisional(s.originator(p))
	return nil
}

// applyLocalAlert synthesizes the alert for packets that describe the event
// directly rather than carrying a notification record.
func (s *Service) applyLocalAlert(p *api.ActionPacket) {
	f := p.Fields
	ts := s.timestamp(p)
	user := f.Handle("u", models.UserHandleSize, models.Undef)
	email := f.String("m", "")

	var a models.Alert
	switch p.Action {
	case api.ActionIncomingRequest:
		if s.alerts.IsUnwantedAlert(models.TypeIncomingPendingContact, -1) {
			return
		}
		pcr := f.Handle("p", models.PCRHandleSize, models.Undef)
		a = models.NewIncomingPendingContact(f.Int64("dts", 0), f.Int64("rts", 0), pcr, email, ts, s.alerts.NextID())

	case api.ActionIncomingUpdated:
		action := f.Int("s", -1)
		if s.alerts.IsUnwantedAlert(models.TypeUpdatedPendingContactIncoming, action) {
			return
		}
		a = models.NewUpdatedPendingContactIncoming(action, user, email, ts, s.alerts.NextID())

	case api.ActionOutgoingUpdated:
		action := f.Int("s", -1)
		if s.alerts.IsUnwantedAlert(models.TypeUpdatedPendingContactOutgoing, action) {
			return
		}
		a = models.NewUpdatedPendingContactOutgoing(action, user, email, ts, s.alerts.NextID())

	case api.ActionPayment:
		a = models.NewPayment(f.NameID("r", "") == "s", f.Int("p", 0), ts, s.alerts.NextID())

	case api.ActionPaymentReminder:
		a = models.NewPaymentReminder(f.Int64("ts", s.alerts.Now()), s.alerts.Now(), s.alerts.NextID())

	case api.ActionTakedown:
		down := f.Int("down", -1)
		node := f.Handle("h", models.NodeHandleSize, models.Undef)
		a = models.NewTakedown(down == 1, down == 0, node, ts, s.alerts.NextID())
	}

	s.alerts.Add(a)
}

func (s *Service) applyBatchEnd(ctx context.Context) error {
	if !s.alerts.IsDeletedSharedNodesStashEmpty() {
		s.alerts.ConvertStashedDeletedSharedNodes()
	}

	if s.metadata != nil {
		if err := s.metadata.SaveLastSyncTimestamp(ctx, s.alerts.Now()); err != nil {
			s.logger.Warn("Failed to save last sync timestamp", "error", err)
		}
	}
	return nil
}
