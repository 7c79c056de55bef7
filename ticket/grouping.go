package ticket

import (
	"sort"

	"eventers-marketplace-client/model"
)

type Summary struct {
	Active int `json:"active"`
	Listed int `json:"listed"`
	Used   int `json:"used"`
}

func (s Summary) Total() int {
	return s.Active + s.Listed + s.Used
}

type EventGroup struct {
	Event       *model.Event   `json:"event,omitempty"`
	Tickets     []model.Ticket `json:"tickets"`
	TicketCount int            `json:"ticketCount"`
	Summary     Summary        `json:"statusSummary"`

	order int
}

// GroupByEvent buckets tickets by event id in a single pass. Each ticket is
// counted under exactly one status.
func GroupByEvent(tickets []model.Ticket) map[string]*EventGroup {
	groups := make(map[string]*EventGroup)
	for _, t := range tickets {
		g, ok := groups[t.EventID]
		if !ok {
			g = &EventGroup{order: len(groups)}
			groups[t.EventID] = g
		}
		if g.Event == nil && t.Event != nil {
			g.Event = t.Event
		}
		g.Tickets = append(g.Tickets, t)
		g.TicketCount++
		switch Status(t) {
		case model.StatusUsed:
			g.Summary.Used++
		case model.StatusListed:
			g.Summary.Listed++
		default:
			g.Summary.Active++
		}
	}
	return groups
}

// Ordered returns the groups in the order their first ticket appeared.
func Ordered(groups map[string]*EventGroup) []*EventGroup {
	out := make([]*EventGroup, 0, len(groups))
	for _, g := range groups {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].order < out[j].order })
	return out
}
