/*
Package wizard implements the step sequencer of the value proposition wizard.

It maps the current step number to a step descriptor (title, description and the
answer fields it edits), computes progress, and drives navigation through the
session store. The sequencer keeps no state of its own.

# Steps

 1. Define Your Context: audience, problem, unique approach.
 2. Your Assets: technical skills, soft skills, success stories.
 3. Generate Numbers: quantifiable results, testimonials.
 4. Calculate Value: monetary impact, time savings, cost reductions.
 5. Craft Proposition: the final statement, with a read-only summary of everything else.
*/
package wizard
