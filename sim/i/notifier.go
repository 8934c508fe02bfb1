package i

// Notifier receives fire-and-forget notifications on event transitions
// (darkness start/end, horde spawned, surge start/end, bonus time) so a UI
// collaborator can present human-readable feedback. The simulation never
// depends on the outcome of a notification.
type Notifier interface {
	Notify(event string, message string)
}
