package ui

import (
	"github.com/hubastard/canopy/engine/colors"
)

type Align int

const (
	AlignStart Align = iota
	AlignCenter
	AlignEnd
	AlignStretch
)

type LayoutDirection int

const (
	LayoutHorizontal LayoutDirection = iota
	LayoutVertical
)

type UIView struct {
	Common[*UIView]
	gap        float32
	gapSet     bool
	mainAlign  Align
	crossAlign Align
	flow       LayoutDirection
}

// View stacks its children, vertically unless told otherwise. The gap
// defaults to the style's item spacing along the flow direction.
func View(children ...UIElement) *UIView {
	v := &UIView{
		mainAlign:  AlignStart,
		crossAlign: AlignStart,
		flow:       LayoutVertical,
	}
	v.Common = NewCommon(v)
	v.Children(children...)
	return v
}

// Row is a horizontal View.
func Row(children ...UIElement) *UIView {
	return View(children...).FlowDirection(LayoutHorizontal).AlignCross(AlignCenter)
}

func (l *UIView) BgColor(color colors.Color) *UIView              { l.base.color = color; return l }
func (l *UIView) FlowDirection(direction LayoutDirection) *UIView { l.flow = direction; return l }
func (l *UIView) Gap(g float32) *UIView                           { l.gap, l.gapSet = g, true; return l }
func (l *UIView) AlignMain(a Align) *UIView                       { l.mainAlign = a; return l }
func (l *UIView) AlignCross(a Align) *UIView                      { l.crossAlign = a; return l }

func (l *UIView) Layout(p *Painter, constraints Constraints) LayoutResult {
	if !l.gapSet {
		spacing := p.Style().Spacing.ItemSpacing
		if l.flow == LayoutVertical {
			l.gap = spacing[1]
		} else {
			l.gap = spacing[0]
		}
	}
	padding := l.base.Padding()
	maxWidth := resolveConstraint(constraints.Max[0])
	maxHeight := resolveConstraint(constraints.Max[1])
	minWidth := constraints.Min[0]
	minHeight := constraints.Min[1]

	innerMaxWidth := maxf(0, maxWidth-padding[0]-padding[2])
	innerMaxHeight := maxf(0, maxHeight-padding[1]-padding[3])
	innerMinWidth := maxf(0, minWidth-padding[0]-padding[2])
	innerMinHeight := maxf(0, minHeight-padding[1]-padding[3])

	children := l.base.children
	childSizes := make([]Vec2, len(children))

	var fixedMainSum float32
	var maxCross float32
	var expandCount int

	childConstraints := Constraints{
		Max: Vec2{innerMaxWidth, innerMaxHeight},
	}

	// Children that expand along the flow take no main-axis space while
	// measuring; they split what is left over afterwards.
	main := 0
	if l.flow == LayoutVertical {
		main = 1
	}
	for i, child := range children {
		size := child.Layout(p, childConstraints).Size
		if l.expands(child) {
			size[main] = 0
			expandCount++
		}
		childSizes[i] = size
		fixedMainSum += size[main]
		maxCross = maxf(maxCross, size[1-main])
	}

	gapTotal := float32(0)
	if len(children) > 1 {
		gapTotal = l.gap * float32(len(children)-1)
	}

	var innerMainTarget float32
	var innerCrossTarget float32

	contentMain := fixedMainSum + gapTotal
	if l.flow == LayoutVertical {
		outerHeight := l.base.resolveAxis(l.base.heightMod, l.base.heightVal, contentMain+padding[1]+padding[3], minHeight, constraints.Max[1])
		innerMainTarget = maxf(0, outerHeight-padding[1]-padding[3])
		innerMainTarget = maxf(innerMainTarget, innerMinHeight)
		outerWidth := l.base.resolveAxis(l.base.widthMod, l.base.widthVal, maxCross+padding[0]+padding[2], minWidth, constraints.Max[0])
		innerCrossTarget = maxf(0, outerWidth-padding[0]-padding[2])
		innerCrossTarget = maxf(innerCrossTarget, innerMinWidth)
		l.base.SetSize(outerWidth, outerHeight)
	} else {
		outerWidth := l.base.resolveAxis(l.base.widthMod, l.base.widthVal, contentMain+padding[0]+padding[2], minWidth, constraints.Max[0])
		innerMainTarget = maxf(0, outerWidth-padding[0]-padding[2])
		innerMainTarget = maxf(innerMainTarget, innerMinWidth)
		outerHeight := l.base.resolveAxis(l.base.heightMod, l.base.heightVal, maxCross+padding[1]+padding[3], minHeight, constraints.Max[1])
		innerCrossTarget = maxf(0, outerHeight-padding[1]-padding[3])
		innerCrossTarget = maxf(innerCrossTarget, innerMinHeight)
		l.base.SetSize(outerWidth, outerHeight)
	}

	mainUsed := contentMain
	if expandCount > 0 {
		share := maxf(0, innerMainTarget-contentMain) / float32(expandCount)
		for i, child := range children {
			if l.expands(child) {
				childSizes[i][main] = share
				mainUsed += share
			}
		}
	}

	ox, oy := l.base.innerPosition()
	innerOrigin := Vec2{ox, oy}
	remaining := maxf(0, innerMainTarget-mainUsed)
	var mainCursor float32
	switch l.mainAlign {
	case AlignCenter:
		mainCursor = remaining * 0.5
	case AlignEnd:
		mainCursor = remaining
	}

	cross := 1 - main
	for i, child := range children {
		size := childSizes[i]
		n := child.Node()
		if l.crossAlign == AlignStretch || l.crossExpands(child) {
			size[cross] = innerCrossTarget
		}
		size[cross] = clamp(size[cross], 0, innerCrossTarget)

		var pos Vec2
		pos[main] = innerOrigin[main] + mainCursor
		pos[cross] = innerOrigin[cross]
		switch l.crossAlign {
		case AlignCenter:
			pos[cross] += (innerCrossTarget - size[cross]) / 2
		case AlignEnd:
			pos[cross] += innerCrossTarget - size[cross]
		}
		n.moveTo(pos)
		n.SetSize(size[0], size[1])
		mainCursor += size[main] + l.gap
	}

	return LayoutResult{Size: l.base.size}
}

func (l *UIView) expands(child UIElement) bool {
	if l.flow == LayoutVertical {
		return child.Node().heightMod == SizeModeExpand
	}
	return child.Node().widthMod == SizeModeExpand
}

func (l *UIView) crossExpands(child UIElement) bool {
	if l.flow == LayoutVertical {
		return child.Node().widthMod == SizeModeExpand
	}
	return child.Node().heightMod == SizeModeExpand
}

func (l *UIView) Draw(p *Painter) {
	if l.base.color[3] > 0 {
		p.Rect(l.base.Rect(), l.base.color)
	}
	for _, c := range l.base.children {
		c.Draw(p)
	}
}
