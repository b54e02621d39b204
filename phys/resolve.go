package phys

import "math"

// resolve applies positional correction and a velocity response for one
// contact. Penetration is split by inverse-mass ratio, so a static body
// absorbs nothing and all correction lands on the dynamic body; two equal
// dynamic bodies split 50/50. Velocity response reflects the relative
// velocity along the contact normal, scaled by the pair's restitution
// (max of the two, default 0 = fully inelastic).
func resolve(a, b *Body, contact Contact) {
	invA, invB := a.invMass(), b.invMass()
	total := invA + invB
	if total == 0 {
		return
	}

	correction := contact.Normal.Mult(contact.Depth / total)
	a.Position = a.Position.Sub(correction.Mult(invA))
	b.Position = b.Position.Add(correction.Mult(invB))

	vn := b.Velocity.Sub(a.Velocity).Dot(contact.Normal)
	if vn >= 0 {
		// Already separating along the normal.
		return
	}
	e := math.Max(a.Restitution, b.Restitution)
	j := -(1 + e) * vn / total
	impulse := contact.Normal.Mult(j)
	a.Velocity = a.Velocity.Sub(impulse.Mult(invA))
	b.Velocity = b.Velocity.Add(impulse.Mult(invB))
}
