// Package galaxy computes the Poisson log-likelihood of the photon
// counts seen in a set of images, given the parameters of a single
// galaxy, and the gradient of that log-likelihood.
//
// A galaxy is a mix of two canonical light profiles (exponential and
// de Vaucouleurs), stretched, squished and rotated by its shape
// parameters, centered on its location, and convolved with each
// image's PSF. Both profiles and PSFs are mixtures of gaussians, so the
// convolution is done in closed form.
//
// The flat parameter vector is
//
//   [theta, sigma, phi, rho, u0, u1, flux_u, flux_g, flux_r, flux_i, flux_z]
//
// where theta is the exp/dev mixing weight, sigma the effective radius
// (arcsec), phi the position angle (radians), rho the axis ratio, u the
// location (in the images' pixel-grid frame) and the fluxes are in
// nanomaggies.
package galaxy

import "errors"

var(
	ErrSingularTransform = errors.New("singular galaxy transform")
	ErrShapeMismatch     = errors.New("shape mismatch")
)

const(
	PixelScale      = 0.396     // arcsec per pixel, both axes
	MinRadiusArcsec = 1.0/30.0  // smaller radii get clamped up to this
	DefaultFDStep   = 1e-5      // step for the finite-difference partials
)
