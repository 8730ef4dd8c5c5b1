package interact3d

import "github.com/sirupsen/logrus"

// Log is the package-level logger used for Structural-error reporting and
// non-fatal diagnostics (§7). Hosts may redirect output or swap formatters,
// mirroring willow's Scene.SetDebugMode knob.
var Log = logrus.New()

func logDroppedPrototype(parentID ElementID, childID ElementID, err error) {
	Log.WithFields(logrus.Fields{
		"parent": parentID,
		"child":  childID,
	}).WithError(err).Warn("interact3d: dropped prototype")
}

func logInvalidShapeKind(elementID ElementID, kind ShapeKind, err error) {
	Log.WithFields(logrus.Fields{
		"element": elementID,
		"kind":    kind,
	}).WithError(err).Warn("interact3d: dropped invalid shape kind")
}

func logHitTestPanic(elementID ElementID, recovered interface{}) {
	Log.WithFields(logrus.Fields{
		"element": elementID,
		"panic":   recovered,
	}).Error("interact3d: recovered panic in hit-test")
}

func logBehaviorPanic(elementID ElementID, behaviorID BehaviorID, recovered interface{}) {
	Log.WithFields(logrus.Fields{
		"element":  elementID,
		"behavior": behaviorID.String(),
		"panic":    recovered,
	}).Error("interact3d: recovered panic in behavior")
}
