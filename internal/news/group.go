package news

type Group struct {
	Label   string
	ISO     string
	Entries []Entry
}

// GroupByDate groups entries that share a date. The input is expected to be
// sorted already; groups come out in the order of their first member.
func GroupByDate(entries []Entry) []Group {
	index := map[string]int{}
	var out []Group

	for _, e := range entries {
		key := e.Date.ISO()
		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			out = append(out, Group{
				Label: e.Date.Label(),
				ISO:   key,
			})
		}

		out[i].Entries = append(out[i].Entries, e)
	}

	return out
}
