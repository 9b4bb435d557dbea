package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	dto "github.com/prometheus/client_model/go"
)

const requestsMetric = "campaignkeeper_api_requests_total"

// Stats prints the API call counters collected during this run.
func (a *App) Stats(_ context.Context, _ []string) error {
	families, err := a.metrics.Gather()
	if err != nil {
		return err
	}

	var calls []*dto.Metric
	for _, mf := range families {
		if mf.GetName() == requestsMetric {
			calls = mf.GetMetric()
		}
	}
	if len(calls) == 0 {
		fmt.Fprintln(a.out, "No API calls yet")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "METHOD\tOUTCOME\tCALLS")
	for _, m := range calls {
		fmt.Fprintf(tw, "%s\t%s\t%.0f\n", strings.ToUpper(label(m, "method")), label(m, "outcome"), m.GetCounter().GetValue())
	}
	return tw.Flush()
}

func label(m *dto.Metric, name string) string {
	for _, lp := range m.GetLabel() {
		if lp.GetName() == name {
			return lp.GetValue()
		}
	}
	return ""
}
