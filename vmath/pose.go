package vmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Pose is a world-space position and orientation
type Pose struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

// NewPose returns a pose at p with identity rotation
func NewPose(p mgl64.Vec3) Pose {
	return Pose{Position: p, Rotation: mgl64.QuatIdent()}
}

// Forward returns the pose's local +Z in world space
func (p Pose) Forward() mgl64.Vec3 {
	return p.Rotation.Rotate(Forward)
}

// Up returns the pose's local +Y in world space
func (p Pose) Up() mgl64.Vec3 {
	return p.Rotation.Rotate(Up)
}

// Right returns the pose's local +X in world space
func (p Pose) Right() mgl64.Vec3 {
	return p.Rotation.Rotate(Right)
}

// TransformPoint maps a local-space point into world space
func (p Pose) TransformPoint(local mgl64.Vec3) mgl64.Vec3 {
	return p.Position.Add(p.Rotation.Rotate(local))
}

// Compose returns the world pose of a child given its local pose relative to p
func (p Pose) Compose(local Pose) Pose {
	return Pose{
		Position: p.TransformPoint(local.Position),
		Rotation: p.Rotation.Mul(local.Rotation).Normalize(),
	}
}

// LookRotation returns a rotation whose forward axis points along dir with up as close to up as possible
func LookRotation(dir, up mgl64.Vec3) mgl64.Quat {
	f := Normalize(dir)
	if f.Len() == 0 {
		return mgl64.QuatIdent()
	}
	r := up.Cross(f)
	if r.Len() < 1e-9 {
		// dir parallel to up, fall back to shortest arc
		return mgl64.QuatBetweenVectors(Forward, f)
	}
	r = r.Normalize()
	u := f.Cross(r)
	m := mgl64.Mat3FromCols(r, u, f)
	return mgl64.Mat4ToQuat(m.Mat4()).Normalize()
}

// SlerpStep rotates current toward target by fraction rate*dt, clamped to [0, 1]
func SlerpStep(current, target mgl64.Quat, rate, dt float64) mgl64.Quat {
	t := mgl64.Clamp(rate*dt, 0, 1)
	if t == 0 {
		return current
	}
	// Take the short way around
	if current.Dot(target) < 0 {
		target = target.Scale(-1)
	}
	return mgl64.QuatSlerp(current, target, t).Normalize()
}

// AlignUp rotates q minimally so its up axis matches normal
func AlignUp(q mgl64.Quat, normal mgl64.Vec3) mgl64.Quat {
	n := Normalize(normal)
	if n.Len() == 0 {
		return q
	}
	from := q.Rotate(Up)
	return mgl64.QuatBetweenVectors(from, n).Mul(q).Normalize()
}

// Yaw applies a rotation of angle radians about q's own up axis
func Yaw(q mgl64.Quat, angle float64) mgl64.Quat {
	return q.Mul(mgl64.QuatRotate(angle, Up)).Normalize()
}

// AngleBetween returns the angle in radians between two rotations
func AngleBetween(a, b mgl64.Quat) float64 {
	d := math.Abs(a.Normalize().Dot(b.Normalize()))
	if d > 1 {
		d = 1
	}
	return 2 * math.Acos(d)
}
