// Package overlay tracks ephemeral overlay surfaces (dialogs, banners, toasts
// and sheets) and drives each one through its lifecycle.
//
// A Controller owns the overlays of a single Category. Show registers an
// entry, asks the ViewHost to insert it and arms the optional auto-dismiss
// timer. Every close path (Close, CloseByID, CloseByTag, CloseAll, a barrier
// tap, the timer or Dispose) funnels into one guarded dismiss routine, so an
// overlay is torn down exactly once no matter how many paths race for it.
//
// Manager bundles one Controller per Category behind a single Init/Dispose.
// It is meant to be built once at the composition root and passed to the code
// that needs it.
package overlay
