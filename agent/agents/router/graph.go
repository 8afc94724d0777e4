package router

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"

	routernode "github.com/KarthickAravind/AI-procurement-assistant-sub000/agent/nodes"
)

func (r *Router) compileHandleMessageGraph(
	ctx context.Context,
) (compose.Runnable[routernode.GraphInput, routernode.GraphOutput], error) {
	graph := compose.NewGraph[routernode.GraphInput, routernode.GraphOutput]()

	if err := graph.AddLambdaNode("validate_request",
		compose.InvokableLambda(func(ctx context.Context, in routernode.GraphInput) (*routernode.GraphState, error) {
			return routernode.ValidateRequest(in, r.now)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node validate_request: %w", err)
	}

	if err := graph.AddLambdaNode("load_session",
		compose.InvokableLambda(func(ctx context.Context, in *routernode.GraphState) (*routernode.GraphState, error) {
			return routernode.LoadOrCreateSession(ctx, in, r.store)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node load_session: %w", err)
	}

	if err := graph.AddLambdaNode("classify_intent",
		compose.InvokableLambda(func(ctx context.Context, in *routernode.GraphState) (*routernode.GraphState, error) {
			return routernode.ClassifyIntent(in, r.classifier)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node classify_intent: %w", err)
	}

	if err := graph.AddLambdaNode("dispatch_intent",
		compose.InvokableLambda(func(ctx context.Context, in *routernode.GraphState) (*routernode.GraphState, error) {
			return routernode.DispatchIntent(ctx, in, r.collab, r.engine)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node dispatch_intent: %w", err)
	}

	if err := graph.AddLambdaNode("generate_reply",
		compose.InvokableLambda(func(ctx context.Context, in *routernode.GraphState) (*routernode.GraphState, error) {
			return routernode.GenerateReply(ctx, in, r.generator)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node generate_reply: %w", err)
	}

	if err := graph.AddLambdaNode("append_and_save",
		compose.InvokableLambda(func(ctx context.Context, in *routernode.GraphState) (*routernode.GraphState, error) {
			return routernode.AppendAndSave(ctx, in, r.store)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node append_and_save: %w", err)
	}

	if err := graph.AddLambdaNode("finalize_reply",
		compose.InvokableLambda(func(ctx context.Context, in *routernode.GraphState) (routernode.GraphOutput, error) {
			return routernode.FinalizeReply(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node finalize_reply: %w", err)
	}

	edges := [][2]string{
		{compose.START, "validate_request"},
		{"validate_request", "load_session"},
		{"load_session", "classify_intent"},
		{"classify_intent", "dispatch_intent"},
		{"dispatch_intent", "generate_reply"},
		{"generate_reply", "append_and_save"},
		{"append_and_save", "finalize_reply"},
		{"finalize_reply", compose.END},
	}

	for _, edge := range edges {
		if err := graph.AddEdge(edge[0], edge[1]); err != nil {
			return nil, fmt.Errorf("add edge %s->%s: %w", edge[0], edge[1], err)
		}
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("router.handle_message"))
	if err != nil {
		return nil, fmt.Errorf("compile router graph: %w", err)
	}
	return runner, nil
}
