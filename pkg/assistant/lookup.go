package assistant

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"
)

func (d *Dispatcher) handleMenu(_ context.Context, msg Normalized) Response {
	entry, _ := menuTarget(msg)
	return Navigate("Opening "+entry.label+"...", entry.path, entry.label)
}

func (d *Dispatcher) handleClientSearch(ctx context.Context, msg Normalized) Response {
	term := searchTerm(msg, clientWords...)
	if term == "" {
		return Navigate("Opening Clients...", "/clients", "Clients")
	}

	clients, err := d.dirs.Clients.SearchClients(ctx, term)
	if err != nil {
		d.logger.Warn("client search failed", zap.String("term", term), zap.Error(err))
		return Text(DescribeError(err, "client information"))
	}
	if len(clients) == 0 {
		return Text(fmt.Sprintf("No clients found matching \"%s\".", term))
	}

	c := clients[0]
	return Navigate(
		fmt.Sprintf("Found client %s. Opening details...", c.ClientName),
		"/clients/"+strconv.FormatInt(c.ID, 10),
		c.ClientName,
	)
}

// handleNameCascade tries jobs, then clients, then candidates and opens the
// first hit. A failing directory counts as a miss.
func (d *Dispatcher) handleNameCascade(ctx context.Context, msg Normalized) Response {
	term := msg.Bare()
	var firstErr error
	misses := 0
	note := func(kind string, err error) {
		d.logger.Warn("name lookup failed", zap.String("directory", kind), zap.String("term", term), zap.Error(err))
		misses++
		if firstErr == nil {
			firstErr = err
		}
	}

	if jobs, err := d.dirs.Jobs.SearchJobs(ctx, term); err != nil {
		note("jobs", err)
	} else if len(jobs) > 0 {
		j := jobs[0]
		return Navigate(fmt.Sprintf("Found job %s. Opening details...", j.JobName), "/jobs/"+strconv.FormatInt(j.ID, 10), j.JobName)
	}

	if clients, err := d.dirs.Clients.SearchClients(ctx, term); err != nil {
		note("clients", err)
	} else if len(clients) > 0 {
		c := clients[0]
		return Navigate(fmt.Sprintf("Found client %s. Opening details...", c.ClientName), "/clients/"+strconv.FormatInt(c.ID, 10), c.ClientName)
	}

	if candidates, err := d.dirs.Candidates.SearchCandidates(ctx, term); err != nil {
		note("candidates", err)
	} else if len(candidates) > 0 {
		c := candidates[0]
		name := c.FullName()
		return Navigate(fmt.Sprintf("Found candidate %s. Opening profile...", name), "/candidates/"+strconv.FormatInt(c.ID, 10), name)
	}

	if misses == 3 {
		return Text(DescribeError(firstErr, "search results"))
	}
	return Text(fmt.Sprintf("I couldn't find any job, client or candidate matching \"%s\".", msg.Trimmed))
}
