// Package preprocess improves OCR accuracy on label photographs.
//
// Consumer photos of packaged-food labels are low-contrast, small-font and
// frequently printed light-on-dark. The preprocessing pipeline upscales the
// image, converts it to perceptual luminance, stretches contrast, binarizes
// at an Otsu-computed threshold and normalizes polarity so text is dark on a
// light background, the input Tesseract handles best.
//
// Preprocessing is deterministic and side-effect free; callers that want to
// hedge against polarity misdetection run it twice (auto and force-inverted)
// and let the OCR adapter keep the better-scoring result.
package preprocess
