package game

import (
	"fmt"
	"strings"

	"github.com/jcreedcmu/paperwork-game/pkg/inventory"
)

const letterPreview = 10

// LetterLabel returns the menu label of a letter with the given body.
func LetterLabel(body string) string {
	r := []rune(body)
	if len(r) > letterPreview {
		r = r[:letterPreview]
	}
	return fmt.Sprintf("letter (%q)", string(r))
}

// DocumentLabel returns the menu label of a document.
func DocumentLabel(doc inventory.DocumentContent) string {
	switch doc.Kind {
	case inventory.DocBrochure:
		return "Brochure"
	case inventory.DocStoreCatalog:
		return "Store Catalog"
	case inventory.DocErrorResponse:
		if doc.Error != nil {
			return "Error: " + string(doc.Error.Kind)
		}
		return "Error"
	}
	return string(doc.Kind)
}

// EnvelopeLabel returns the menu label of an envelope.
func EnvelopeLabel(e *inventory.Envelope) string {
	used := 0
	for _, id := range e.Slots {
		if id != inventory.None {
			used++
		}
	}
	addr := e.Address
	if addr == "" {
		addr = "no address"
	}
	return fmt.Sprintf("envelope (%s) [%d/%d]", addr, used, len(e.Slots))
}

// StackLabel returns the menu label of a stack.
func StackLabel(st *inventory.Stack) string {
	return fmt.Sprintf("%s x%d", st.Resource.Label(), st.Quantity)
}

func withMoney(money int, label string) string {
	if money > 0 {
		return fmt.Sprintf("($%d) %s", money, label)
	}
	return label
}

// DocumentText returns the readable body of a document.
func (s *State) DocumentText(doc inventory.DocumentContent) string {
	switch doc.Kind {
	case inventory.DocBrochure:
		return fmt.Sprintf("Thank you for your letter.\n\n> %s\n\n"+
			"We regret that we cannot answer personal correspondence. "+
			"Please find enclosed our brochure. For office supplies, ask for our catalog.",
			doc.InResponseTo)
	case inventory.DocStoreCatalog:
		var b strings.Builder
		b.WriteString("STORE CATALOG\n\n")
		for _, e := range s.content.Catalog {
			stock := ""
			if !e.InStock {
				stock = " (out of stock)"
			}
			fmt.Fprintf(&b, "%-10s $%d%s\n", e.Item, e.Price, stock)
		}
		b.WriteString("\nOrder pencils and paper with form STO-001, envelopes with form ENV-001.")
		return b.String()
	case inventory.DocErrorResponse:
		if doc.Error == nil {
			return "Your request could not be processed."
		}
		return ErrorText(*doc.Error)
	}
	return ""
}

// ErrorText explains an error response to the player.
func ErrorText(e inventory.ErrorResponse) string {
	switch e.Kind {
	case inventory.FailBadNumber:
		return fmt.Sprintf("We could not understand the number %q.", e.Input)
	case inventory.FailPaymentMismatch:
		return fmt.Sprintf("You enclosed $%d but the form says $%d.", e.Enclosed, e.Specified)
	case inventory.FailPaymentWrong:
		return fmt.Sprintf("The correct payment was $%d, but you paid $%d.", e.Should, e.Actual)
	case inventory.FailWrongAddress:
		return fmt.Sprintf("Nobody at %q could be found.", e.Address)
	case inventory.FailMissingEnclosure:
		return fmt.Sprintf("The envelope to %q was empty.", e.Address)
	case inventory.FailWrongDepartment:
		if e.Form == "" {
			return fmt.Sprintf("%q does not accept letters.", e.Address)
		}
		return fmt.Sprintf("%q does not handle form %s.", e.Address, e.Form)
	case inventory.FailOutOfStock:
		return fmt.Sprintf("Sorry, %s is out of stock.", e.Item)
	}
	return "Your request could not be processed."
}
