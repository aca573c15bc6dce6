package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"placebrowser/internal/model"
)

// chooseUsers picks the users to export: from query when one is given,
// from a picker when stdin is a terminal, otherwise everyone.
func chooseUsers(query string, users []model.User) ([]model.User, error) {
	switch {
	case len(users) == 0:
		return nil, nil
	case strings.TrimSpace(query) != "":
		return matchUsers(users, query)
	case isTerminal(os.Stdin):
		return pickUsers(users)
	default:
		return users, nil
	}
}

type matchRank int

const (
	noMatch matchRank = iota
	partialMatch
	exactMatch
	idMatch
)

// rankUser scores how well term, already lower-cased, identifies u.
func rankUser(u model.User, term string) matchRank {
	if id, err := strconv.Atoi(term); err == nil && id == u.ID {
		return idMatch
	}
	fields := []string{strings.ToLower(u.Username), strings.ToLower(u.Name), strings.ToLower(u.Email)}
	rank := noMatch
	for _, f := range fields {
		switch {
		case f == "":
		case f == term:
			return exactMatch
		case strings.Contains(f, term):
			rank = partialMatch
		}
	}
	return rank
}

// matchUsers resolves a comma separated list of ids, usernames, names or
// emails. "all" anywhere in the list selects every user.
func matchUsers(users []model.User, raw string) ([]model.User, error) {
	var indexes []int
	for _, term := range strings.Split(raw, ",") {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			continue
		}
		if term == "all" {
			return users, nil
		}
		idx, err := resolveUser(users, term)
		if err != nil {
			return nil, err
		}
		indexes = append(indexes, idx)
	}
	if len(indexes) == 0 {
		return nil, errors.New("no valid user query provided")
	}
	return usersFromIndexes(users, indexes)
}

// resolveUser returns the index of the single best match for term. Ties at
// the best rank are reported with the ids of the candidates.
func resolveUser(users []model.User, term string) (int, error) {
	best, candidates := noMatch, []int(nil)
	for i, u := range users {
		r := rankUser(u, term)
		switch {
		case r == noMatch || r < best:
		case r > best:
			best, candidates = r, []int{i}
		default:
			candidates = append(candidates, i)
		}
	}

	switch len(candidates) {
	case 0:
		return 0, fmt.Errorf("no user matches %q", term)
	case 1:
		return candidates[0], nil
	}
	ids := make([]string, 0, len(candidates))
	for _, i := range candidates {
		ids = append(ids, fmt.Sprintf("#%d %s", users[i].ID, users[i].Username))
	}
	return 0, fmt.Errorf("%q matches %d users (%s); pick one by id", term, len(candidates), strings.Join(ids, ", "))
}

// usersFromIndexes maps picked indexes back to users, keeping first-seen
// order and dropping repeats.
func usersFromIndexes(users []model.User, indexes []int) ([]model.User, error) {
	if len(indexes) == 0 {
		return nil, errors.New("no users selected")
	}
	seen := make(map[int]bool, len(indexes))
	out := make([]model.User, 0, len(indexes))
	for _, i := range indexes {
		if i < 0 || i >= len(users) {
			return nil, fmt.Errorf("user index %d out of range", i)
		}
		if seen[i] {
			continue
		}
		seen[i] = true
		out = append(out, users[i])
	}
	return out, nil
}

func pickUsers(users []model.User) ([]model.User, error) {
	options := make([]huh.Option[int], len(users))
	for i, u := range users {
		options[i] = huh.NewOption(fmt.Sprintf("#%d %s <%s>", u.ID, u.Username, u.Email), i)
	}

	var picked []int
	confirmed := true
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[int]().
				Title("Users to export").
				Options(options...).
				Filterable(true).
				Validate(func(v []int) error {
					if len(v) == 0 {
						return errors.New("pick at least one user")
					}
					return nil
				}).
				Value(&picked),
		),
		huh.NewGroup(
			huh.NewConfirm().
				TitleFunc(func() string {
					return fmt.Sprintf("Export %d user(s)?", len(picked))
				}, &picked).
				Affirmative("Export").
				Negative("Cancel").
				Value(&confirmed),
		),
	).Run()
	if err != nil {
		return nil, fmt.Errorf("pick users: %w", err)
	}
	if !confirmed {
		return nil, nil
	}
	return usersFromIndexes(users, picked)
}
