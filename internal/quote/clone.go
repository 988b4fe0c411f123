package quote

// Clone returns a deep copy of q. Every pointer field is copied so the
// result shares no memory with the receiver.
func (q *QuoteData) Clone() *QuoteData {
	if q == nil {
		return nil
	}
	out := &QuoteData{
		CurrentProduct: q.CurrentProduct,
		UIMetadata: UIMetadata{
			LFModifiedRowIndexes: append([]int{}, q.UIMetadata.LFModifiedRowIndexes...),
		},
		F1Snapshot: q.F1Snapshot.Clone(),
		QuoteID:    q.QuoteID,
		IssueDate:  q.IssueDate,
		DueDate:    q.DueDate,
		Customer:   q.Customer,
	}
	if q.Products != nil {
		out.Products = make(map[string]*ProductEntry, len(q.Products))
		for key, entry := range q.Products {
			out.Products[key] = entry.Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the entry.
func (p *ProductEntry) Clone() *ProductEntry {
	if p == nil {
		return nil
	}
	items := make([]LineItem, len(p.Items))
	for i, item := range p.Items {
		items[i] = item.Clone()
	}
	return &ProductEntry{Items: items}
}

// Clone returns a copy of the row with its own pointer fields.
func (li LineItem) Clone() LineItem {
	out := li
	out.Width = cloneInt(li.Width)
	out.Height = cloneInt(li.Height)
	out.Chain = cloneInt(li.Chain)
	out.FabricType = cloneString(li.FabricType)
	out.LinePrice = cloneFloat(li.LinePrice)
	return out
}

// Clone returns a deep copy of the snapshot, or nil.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	return &Snapshot{
		WinderQty:          cloneFloat(s.WinderQty),
		MotorQty:           cloneFloat(s.MotorQty),
		ChargerQty:         cloneFloat(s.ChargerQty),
		CordQty:            cloneFloat(s.CordQty),
		Remote1chQty:       cloneFloat(s.Remote1chQty),
		Remote16chQty:      cloneFloat(s.Remote16chQty),
		DualComboQty:       cloneFloat(s.DualComboQty),
		DualSlimQty:        cloneFloat(s.DualSlimQty),
		DiscountPercentage: cloneFloat(s.DiscountPercentage),
	}
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneString(v *string) *string {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
