package game

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jcreedcmu/paperwork-game/pkg/inventory"
	"github.com/jcreedcmu/paperwork-game/pkg/resource"
)

// collectOutbox schedules a reply for every item in the outbox and detaches
// it. Detached items keep their payload; the reply was decided from it at
// collection time.
func (s *State) collectOutbox() error {
	n, err := s.store.ContainerLen(s.outbox)
	if err != nil {
		return err
	}
	if n == 0 {
		return nil
	}
	for range n {
		id, p, err := s.store.ItemAt(inventory.FlexAt(s.outbox, 0))
		if err != nil {
			return err
		}
		reply := s.resolveSent(p)
		s.ScheduleFuture(s.content.ReplyDelay, reply)
		if _, err := s.store.RemoveAt(inventory.FlexAt(s.outbox, 0)); err != nil {
			return err
		}
		delete(s.unread, id)
		s.logger.Debug("outbox item collected", "id", id, "kind", p.Kind(), "reply", reply.Name())
	}
	s.message("Outbox contents have been collected.")
	return nil
}

func (s *State) resolveSent(p inventory.Payload) Action {
	switch v := p.(type) {
	case *inventory.Letter:
		return s.resolveLetter(v)
	case *inventory.Form:
		return s.resolveForm(v)
	case *inventory.Envelope:
		return s.resolveEnvelope(v)
	}
	return None{}
}

func (s *State) resolveLetter(l *inventory.Letter) Action {
	rule, ok := s.content.MatchLetter(l.Body)
	if !ok {
		return None{}
	}
	switch rule.Reply {
	case ReplyDocument:
		doc := inventory.DocumentContent{Kind: rule.Document}
		if rule.Document == inventory.DocBrochure {
			doc.InResponseTo = l.Body
		}
		return addDoc(doc)
	case ReplyForm:
		return addForm(rule.Form)
	case ReplyBigMoney:
		return WithMessage{
			Msg:  fmt.Sprintf("You received $%d.", s.content.BigMoney),
			Then: Grant{Resource: resource.Cash, Quantity: s.content.BigMoney},
		}
	}
	return None{}
}

func (s *State) resolveForm(f *inventory.Form) Action {
	switch f.Form {
	case inventory.FormENV001:
		return s.resolveENV001(f)
	case inventory.FormSTO001:
		return s.resolveSTO001(f)
	}
	return None{}
}

func (s *State) resolveENV001(f *inventory.Form) Action {
	quantityString, paymentString := field(f.Fields, 0), field(f.Fields, 1)
	quantity, ok := parseQuantity(quantityString)
	if !ok || quantity == 0 {
		return addError(inventory.ErrorResponse{Kind: inventory.FailBadNumber, Input: quantityString})
	}
	payment, ok := parseQuantity(paymentString)
	if !ok {
		return addError(inventory.ErrorResponse{Kind: inventory.FailBadNumber, Input: paymentString})
	}
	if f.Money != payment {
		return addError(inventory.ErrorResponse{Kind: inventory.FailPaymentMismatch, Enclosed: f.Money, Specified: payment})
	}
	price, _ := s.content.CatalogEntry("envelope")
	if due := quantity * price.Price; f.Money != due {
		return addError(inventory.ErrorResponse{Kind: inventory.FailPaymentWrong, Should: due, Actual: f.Money})
	}
	return WithMessage{
		Msg: fmt.Sprintf("You received %d envelopes.", quantity),
		Then: AddItems{
			Items:  []inventory.Payload{&inventory.Stack{Resource: resource.Envelope, Quantity: quantity}},
			Unread: true,
		},
	}
}

// sto001Items lines up with the STO-001 layout.
var sto001Items = []string{"pencil", "paper", "radio"}

func (s *State) resolveSTO001(f *inventory.Form) Action {
	qty := make([]int, len(sto001Items))
	for i := range sto001Items {
		raw := field(f.Fields, i)
		if strings.TrimSpace(raw) == "" {
			continue
		}
		n, ok := parseQuantity(raw)
		if !ok {
			return addError(inventory.ErrorResponse{Kind: inventory.FailBadNumber, Input: raw})
		}
		qty[i] = n
	}

	due := 0
	for i, item := range sto001Items {
		if qty[i] == 0 {
			continue
		}
		entry, _ := s.content.CatalogEntry(item)
		if !entry.InStock {
			return addError(inventory.ErrorResponse{Kind: inventory.FailOutOfStock, Item: item})
		}
		due += qty[i] * entry.Price
	}
	if f.Money != due {
		return addError(inventory.ErrorResponse{Kind: inventory.FailPaymentWrong, Should: due, Actual: f.Money})
	}

	pencils, paper := qty[0], qty[1]
	return WithMessage{
		Msg: fmt.Sprintf("You received %d pencils and %d paper.", pencils, paper),
		Then: Seq{Actions: []Action{
			Grant{Resource: resource.Pencil, Quantity: pencils},
			Grant{Resource: resource.Paper, Quantity: paper},
		}},
	}
}

func (s *State) resolveEnvelope(e *inventory.Envelope) Action {
	dept, ok := s.content.Department(e.Address)
	if !ok {
		return addError(inventory.ErrorResponse{Kind: inventory.FailWrongAddress, Address: e.Address})
	}

	var enclosure inventory.Payload
	for _, id := range e.Slots {
		if id == inventory.None {
			continue
		}
		p, err := s.store.Get(id)
		if err != nil {
			continue
		}
		if k := p.Kind(); k == inventory.KindForm || k == inventory.KindLetter {
			enclosure = p
			break
		}
	}
	if enclosure == nil {
		return addError(inventory.ErrorResponse{Kind: inventory.FailMissingEnclosure, Address: e.Address})
	}

	switch v := enclosure.(type) {
	case *inventory.Form:
		if !dept.Accepts(v.Form) {
			return addError(inventory.ErrorResponse{Kind: inventory.FailWrongDepartment, Address: e.Address, Form: v.Form})
		}
		return s.resolveForm(v)
	case *inventory.Letter:
		if !dept.Letters {
			return addError(inventory.ErrorResponse{Kind: inventory.FailWrongDepartment, Address: e.Address})
		}
		return s.resolveLetter(v)
	}
	return None{}
}

func addDoc(doc inventory.DocumentContent) Action {
	return AddItems{Items: []inventory.Payload{&inventory.Document{Doc: doc}}, Unread: true}
}

func addForm(k inventory.FormKind) Action {
	fields := make([]string, len(FormLayout(k)))
	return AddItems{Items: []inventory.Payload{&inventory.Form{Form: k, Fields: fields}}, Unread: true}
}

func addError(e inventory.ErrorResponse) Action {
	return addDoc(inventory.DocumentContent{Kind: inventory.DocErrorResponse, Error: &e})
}

func field(fields []string, i int) string {
	if i < len(fields) {
		return fields[i]
	}
	return ""
}

// parseQuantity accepts a non-negative decimal integer, ignoring surrounding
// whitespace.
func parseQuantity(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
