// Package limits normalizes divergent device limits to one conservative
// baseline.
//
// The baseline table lists every limit the engine relies on together with a
// comparison kind and a provenance tier. A device is accepted only when every
// Hard entry is met; the resulting LimitSet then holds the baseline value for
// each Hard entry, never the hardware headroom beyond it.
//
//	raw := limits.FromGPUTypes(info.Name, info.Backend, caps.Limits, caps.AlignmentsMask).
//		WithDefaults(limits.DefaultVulkanLimits())
//	set, err := limits.Validate(raw)
//	var rejected *limits.DeviceRejectedError
//	if errors.As(err, &rejected) {
//		fmt.Println(rejected.Report())
//	}
//
// Soft entries are vendor-divergent limits whose baseline is still
// undetermined. They never block acceptance and never tighten the set; a
// shortfall is logged at Info with tier=soft and kept as a Diagnostic.
package limits
