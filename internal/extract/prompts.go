package extract

const imageAnalysisPrompt = `Analyze this image from a project submission.

Describe what it shows in 2-3 sentences, then decide whether it depicts a
working prototype (screenshot of a running application, demo interface,
functioning hardware) or only descriptive material (diagrams, slides,
mockups, text).

Respond with a JSON object:
{
  "content": "<your description>",
  "content_type": "Prototype" or "Text"
}`

const pdfPagesPrompt = `These images are the first %d pages of the PDF
document %q in a project submission, rendered in order.

Describe what the pages show in 2-3 sentences, reading any diagrams and
screenshots as well as the text, then decide whether the document shows a
working prototype (screenshots of a running application, demo output,
functioning hardware) or only descriptive material (plans, concepts,
slides without a demo).

Respond with a JSON object:
{
  "content": "<your description>",
  "content_type": "Prototype" or "Text"
}`

const documentAnalysisPrompt = `Below is text extracted from a document in a
project submission.

Decide whether the document describes a working prototype (evidence of a
running application, demo, or functioning build) or only descriptive
material (plans, concepts, slides without a demo).

Respond with a JSON object:
{
  "content": "<2-3 sentence summary of the document>",
  "content_type": "Prototype" or "Text"
}

Document text:
%s`

const videoAnalysisPrompt = `These %d frames were sampled in order from the
video %q in a project submission.

Describe what the video shows across the frames in 2-3 sentences, then
decide whether it demonstrates a working prototype (a running application
or device being operated) or only descriptive material (slides, talking
head, whiteboard).

Respond with a JSON object:
{
  "content": "<your description>",
  "content_type": "Prototype" or "Text"
}`
